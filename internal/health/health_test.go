package health

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"school/backend/internal/storage/memory"
)

func TestReadinessChecks(t *testing.T) {
	t.Run("目录存在时就绪", func(t *testing.T) {
		hc := NewHealthChecker(memory.NewStore(), t.TempDir(), zap.NewNop())

		rec := httptest.NewRecorder()
		hc.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("目录缺失时不就绪并记录日志", func(t *testing.T) {
		core, observed := observer.New(zap.WarnLevel)
		missingDir := filepath.Join(t.TempDir(), "missing")
		hc := NewHealthChecker(memory.NewStore(), missingDir, zap.New(core))

		rec := httptest.NewRecorder()
		hc.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.NotZero(t, observed.Len())
		assert.Equal(t, "avatar dir readiness check failed", observed.All()[0].Message)
	})
}

func TestCheckHealth(t *testing.T) {
	dir := t.TempDir()
	hc := NewHealthChecker(memory.NewStore(), dir, zap.NewNop())

	results := hc.CheckHealth()
	assert.Equal(t, "OK", results["database"])
	assert.Equal(t, "OK", results["avatar_dir"])
	assert.NotEmpty(t, results["timestamp"])
}
