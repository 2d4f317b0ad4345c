package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 学生指标
	StudentsCreated prometheus.Counter
	StudentsDeleted prometheus.Counter

	// 头像指标
	AvatarUploadsTotal    prometheus.Counter
	AvatarUploadFailures  *prometheus.CounterVec
	AvatarUploadSize      prometheus.Histogram
	AvatarProcessDuration prometheus.Histogram

	// 错误指标
	ErrorsTotal *prometheus.CounterVec
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "school_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "school_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		StudentsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "school_students_created_total",
				Help: "Total number of students created",
			},
		),

		StudentsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "school_students_deleted_total",
				Help: "Total number of students deleted",
			},
		),

		AvatarUploadsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "school_avatar_uploads_total",
				Help: "Total number of successful avatar uploads",
			},
		),

		AvatarUploadFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "school_avatar_upload_failures_total",
				Help: "Total number of failed avatar uploads",
			},
			[]string{"reason"},
		),

		AvatarUploadSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "school_avatar_upload_size_bytes",
				Help:    "Uploaded avatar file size in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),

		AvatarProcessDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "school_avatar_process_duration_seconds",
				Help:    "Avatar store and preview generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "school_errors_total",
				Help: "Total number of errors",
			},
			[]string{"type", "component"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStudentCreated 记录学生创建
func (m *Metrics) RecordStudentCreated() {
	m.StudentsCreated.Inc()
}

// RecordStudentDeleted 记录学生删除
func (m *Metrics) RecordStudentDeleted() {
	m.StudentsDeleted.Inc()
}

// RecordAvatarUpload 记录一次成功的头像上传
func (m *Metrics) RecordAvatarUpload(size int64, duration time.Duration) {
	m.AvatarUploadsTotal.Inc()
	m.AvatarUploadSize.Observe(float64(size))
	m.AvatarProcessDuration.Observe(duration.Seconds())
}

// RecordAvatarUploadFailure 记录一次失败的头像上传
func (m *Metrics) RecordAvatarUploadFailure(reason string) {
	m.AvatarUploadFailures.WithLabelValues(reason).Inc()
}

// RecordError 记录错误
func (m *Metrics) RecordError(errorType, component string) {
	m.ErrorsTotal.WithLabelValues(errorType, component).Inc()
}

// Handler 返回 Prometheus 指标的 HTTP 处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
