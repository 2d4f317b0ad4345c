package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试辅助函数：创建临时测试目录
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// TestNewStore 测试创建文件系统存储实例
func TestNewStore(t *testing.T) {
	t.Run("create store with valid path", func(t *testing.T) {
		tempDir := t.TempDir()

		store, err := NewStore(tempDir)
		require.NoError(t, err)
		assert.NotNil(t, store)
		assert.Equal(t, tempDir, store.basePath)
	})

	t.Run("create store creates base directory if not exists", func(t *testing.T) {
		newPath := filepath.Join(t.TempDir(), "new", "nested", "path")

		store, err := NewStore(newPath)
		require.NoError(t, err)
		assert.NotNil(t, store)

		// 验证目录已创建
		_, err = os.Stat(newPath)
		assert.NoError(t, err)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := NewStore("")
		assert.Error(t, err)
	})
}

// TestSaveAvatar 测试头像原图写入
func TestSaveAvatar(t *testing.T) {
	store := setupTestStore(t)

	studentID := "student-001"
	content := []byte("fake image bytes")

	t.Run("save avatar successfully", func(t *testing.T) {
		path, written, err := store.SaveAvatar(studentID, "png", bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, store.AvatarPath(studentID, "png"), path)
		assert.Equal(t, int64(len(content)), written)

		// 验证文件内容
		saved, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("second save overwrites existing file", func(t *testing.T) {
		newContent := []byte("replacement image bytes")
		path, written, err := store.SaveAvatar(studentID, "png", bytes.NewReader(newContent))
		require.NoError(t, err)
		assert.Equal(t, int64(len(newContent)), written)

		saved, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, newContent, saved)
	})

	t.Run("copy failure reports error", func(t *testing.T) {
		_, _, err := store.SaveAvatar("student-002", "png", failingReader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write avatar file")
	})
}

// TestAvatarPath 测试确定性路径构造
func TestAvatarPath(t *testing.T) {
	store := setupTestStore(t)

	path := store.AvatarPath("abc", "jpg")
	assert.Equal(t, filepath.Join(store.basePath, "abc.jpg"), path)
}

// TestRemoveAvatar 测试旧原图清理
func TestRemoveAvatar(t *testing.T) {
	store := setupTestStore(t)

	t.Run("remove existing avatar", func(t *testing.T) {
		path, _, err := store.SaveAvatar("student-003", "gif", bytes.NewReader([]byte("gif")))
		require.NoError(t, err)

		require.NoError(t, store.RemoveAvatar("student-003", "gif"))

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("remove missing avatar is not an error", func(t *testing.T) {
		assert.NoError(t, store.RemoveAvatar("no-such-student", "png"))
	})
}

// failingReader 总是返回读取错误，用于模拟拷贝中断
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}
