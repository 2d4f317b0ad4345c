package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school/backend/internal/config"
	"school/backend/internal/health"
	"school/backend/internal/middleware"
	"school/backend/internal/monitoring"
	"school/backend/internal/pool"
	"school/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config        *config.Config
	Students      *service.StudentService
	Faculties     *service.FacultyService
	Avatars       *service.AvatarService
	AvatarQueries *service.AvatarQueryService
	Workers       *pool.WorkerPool
	Metrics       *monitoring.Metrics
	Health        *health.HealthChecker
	Logger        *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HTTPMetrics(deps.Metrics))
	router.Use(middleware.BodySizeLimit(deps.Config.Avatar.MaxUploadSize))

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// 创建处理器
	studentHandler := NewStudentHandler(deps.Students, deps.Metrics)
	facultyHandler := NewFacultyHandler(deps.Faculties)
	avatarHandler := NewAvatarHandler(deps.Avatars, deps.AvatarQueries, deps.Metrics)
	infoHandler := NewInfoHandler(deps.Config.Server.Port, deps.Workers, deps.Logger)

	// 健康检查与指标
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.CheckHealth())
	})
	router.GET("/live", gin.WrapF(deps.Health.LiveEndpoint))
	router.GET("/ready", gin.WrapF(deps.Health.ReadyEndpoint))
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	// V1 API
	v1 := router.Group("/v1")
	{
		v1.GET("/info", infoHandler.getInfo)
		v1.GET("/info/sum", infoHandler.getParallelSum)

		// ========== Student Routes ==========
		studentRoutes := v1.Group("/students")
		{
			studentRoutes.POST("", studentHandler.createStudent)
			studentRoutes.GET("/:id", studentHandler.getStudent)
			studentRoutes.PUT("/:id", studentHandler.updateStudent)
			studentRoutes.DELETE("/:id", studentHandler.deleteStudent)

			// 查询与统计端点
			studentRoutes.GET("/filter-by-age", studentHandler.filterByAge)
			studentRoutes.GET("/find-by-age-between", studentHandler.findByAgeBetween)
			studentRoutes.GET("/count", studentHandler.countStudents)
			studentRoutes.GET("/average-age", studentHandler.averageAge)
			studentRoutes.GET("/last-five", studentHandler.lastFiveStudents)
			studentRoutes.GET("/first-six", studentHandler.firstSixStudents)
			studentRoutes.GET("/names-starting-with", studentHandler.namesStartingWith)
			studentRoutes.POST("/print-parallel", studentHandler.printNamesParallel)

			// 学生关联端点
			studentRoutes.GET("/:id/faculty", studentHandler.studentFaculty)

			// 头像端点
			studentRoutes.POST("/:id/avatar", avatarHandler.uploadAvatar)
			studentRoutes.GET("/:id/avatar", avatarHandler.getAvatar)
			studentRoutes.GET("/:id/avatar/preview", avatarHandler.getAvatarPreview)
		}

		// ========== Faculty Routes ==========
		facultyRoutes := v1.Group("/faculties")
		{
			facultyRoutes.POST("", facultyHandler.createFaculty)
			facultyRoutes.GET("", facultyHandler.listFaculties)
			facultyRoutes.GET("/:id", facultyHandler.getFaculty)
			facultyRoutes.PUT("/:id", facultyHandler.updateFaculty)
			facultyRoutes.DELETE("/:id", facultyHandler.deleteFaculty)
			facultyRoutes.GET("/:id/students", facultyHandler.facultyStudents)
			facultyRoutes.GET("/longest-name", facultyHandler.longestFacultyName)
		}

		// ========== Avatar Routes ==========
		v1.GET("/avatars", avatarHandler.listAvatars)
	}

	return router
}
