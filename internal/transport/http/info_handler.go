package httptransport

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school/backend/internal/pool"
)

// parallelSumUpper 并行求和演示的上界（求 1..N 的和）。
const parallelSumUpper = 1_000_000

// InfoHandler 服务运行信息处理器
type InfoHandler struct {
	port      int
	startedAt time.Time
	workers   *pool.WorkerPool
	log       *zap.Logger
}

// NewInfoHandler 创建服务信息处理器
func NewInfoHandler(port int, workers *pool.WorkerPool, log *zap.Logger) *InfoHandler {
	return &InfoHandler{
		port:      port,
		startedAt: time.Now(),
		workers:   workers,
		log:       log,
	}
}

// getInfo godoc
// @Summary 获取服务运行信息
// @Tags Info
// @Produce json
// @Success 200 {object} Response
func (h *InfoHandler) getInfo(c *gin.Context) {
	Success(c, gin.H{
		"port":   h.port,
		"uptime": time.Since(h.startedAt).String(),
	})
}

// getParallelSum godoc
// @Summary 并行计算 1 到一百万的和
// @Description 把区间切分给协程池并行求和的演示端点
// @Tags Info
// @Produce json
// @Success 200 {object} Response
func (h *InfoHandler) getParallelSum(c *gin.Context) {
	start := time.Now()
	sum := parallelSum(h.workers, parallelSumUpper, 4)
	duration := time.Since(start)

	h.log.Info("parallel sum computed",
		zap.Int64("sum", sum),
		zap.Duration("duration", duration),
	)

	Success(c, gin.H{
		"sum":      sum,
		"duration": duration.String(),
	})
}

// parallelSum 在协程池上分块并行计算 1..upper 的和。
func parallelSum(workers *pool.WorkerPool, upper, chunks int) int64 {
	chunkSize := upper / chunks

	var total int64
	var wg sync.WaitGroup
	for i := 0; i < chunks; i++ {
		first := i*chunkSize + 1
		last := (i + 1) * chunkSize
		if i == chunks-1 {
			last = upper
		}

		wg.Add(1)
		workers.Submit(func() {
			defer wg.Done()
			var sum int64
			for n := first; n <= last; n++ {
				sum += int64(n)
			}
			atomic.AddInt64(&total, sum)
		})
	}
	wg.Wait()

	return total
}
