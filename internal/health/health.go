package health

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"school/backend/internal/storage"
)

// HealthChecker 健康检查器
type HealthChecker struct {
	health    healthcheck.Handler
	store     storage.Store
	avatarDir string
	logger    *zap.Logger
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(store storage.Store, avatarDir string, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		health:    healthcheck.NewHandler(),
		store:     store,
		avatarDir: avatarDir,
		logger:    logger,
	}

	hc.addChecks()

	return hc
}

// addChecks 添加健康检查
func (hc *HealthChecker) addChecks() {
	// 数据库连接检查
	hc.health.AddReadinessCheck("database", func() error {
		if err := hc.store.Health(); err != nil {
			hc.logger.Warn("database readiness check failed", zap.Error(err))
			return err
		}
		return nil
	})

	// 头像目录可访问性检查
	hc.health.AddReadinessCheck("avatar_dir", func() error {
		info, err := os.Stat(hc.avatarDir)
		if err != nil {
			hc.logger.Warn("avatar dir readiness check failed", zap.Error(err))
			return err
		}
		if !info.IsDir() {
			err := fmt.Errorf("%s is not a directory", hc.avatarDir)
			hc.logger.Warn("avatar dir readiness check failed", zap.Error(err))
			return err
		}
		return nil
	})

	hc.health.AddLivenessCheck("system", func() error {
		return nil
	})
}

// LiveEndpoint 存活检查端点
func (hc *HealthChecker) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	hc.health.LiveEndpoint(w, r)
}

// ReadyEndpoint 就绪检查端点
func (hc *HealthChecker) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	hc.health.ReadyEndpoint(w, r)
}

// CheckHealth 执行健康检查
func (hc *HealthChecker) CheckHealth() map[string]string {
	results := make(map[string]string)

	if err := hc.store.Health(); err != nil {
		results["database"] = fmt.Sprintf("ERROR: %v", err)
	} else {
		results["database"] = "OK"
	}

	if _, err := os.Stat(hc.avatarDir); err != nil {
		results["avatar_dir"] = fmt.Sprintf("ERROR: %v", err)
	} else {
		results["avatar_dir"] = "OK"
	}

	results["timestamp"] = time.Now().Format(time.RFC3339)

	return results
}
