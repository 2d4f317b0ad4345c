package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试辅助函数：生成一张纯色测试图并写入临时文件
func writeTestImage(t *testing.T, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	switch filepath.Ext(name) {
	case ".png":
		require.NoError(t, png.Encode(&buf, img))
	case ".jpg", ".jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	default:
		t.Fatalf("unsupported test image extension: %s", name)
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// 解码预览字节并返回尺寸
func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// TestGenerate 测试预览图生成的尺寸语义
func TestGenerate(t *testing.T) {
	t.Run("400x200 source yields 100x50 preview", func(t *testing.T) {
		path := writeTestImage(t, "photo.png", 400, 200)

		data, err := Generate(path)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		w, h := decodeSize(t, data)
		assert.Equal(t, 100, w)
		assert.Equal(t, 50, h)
	})

	t.Run("height follows integer truncation", func(t *testing.T) {
		// 350/100 = 3（截断），高度 = 200/3 = 66
		path := writeTestImage(t, "photo.png", 350, 200)

		data, err := Generate(path)
		require.NoError(t, err)

		w, h := decodeSize(t, data)
		assert.Equal(t, 100, w)
		assert.Equal(t, 66, h)
	})

	t.Run("jpeg source re-encoded as jpeg", func(t *testing.T) {
		path := writeTestImage(t, "photo.jpg", 400, 300)

		data, err := Generate(path)
		require.NoError(t, err)

		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("narrow tall source fails instead of zero-height raster", func(t *testing.T) {
		path := writeTestImage(t, "narrow.png", 1, 1000)

		_, err := Generate(path)
		assert.ErrorIs(t, err, ErrImageTooNarrow)
	})

	t.Run("extremely wide source fails on zero computed height", func(t *testing.T) {
		path := writeTestImage(t, "wide.png", 10000, 50)

		_, err := Generate(path)
		assert.ErrorIs(t, err, ErrImageTooNarrow)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Generate(filepath.Join(t.TempDir(), "missing.png"))
		assert.Error(t, err)
	})

	t.Run("corrupt content fails to decode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

		_, err := Generate(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode image")
	})

	t.Run("unsupported extension fails on encode", func(t *testing.T) {
		// 内容是合法 PNG，但扩展名没有对应编码器
		src := writeTestImage(t, "photo.png", 400, 200)
		path := filepath.Join(filepath.Dir(src), "photo.bmp")
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0644))

		_, err = Generate(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("source file is not modified", func(t *testing.T) {
		path := writeTestImage(t, "photo.png", 400, 200)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = Generate(path)
		require.NoError(t, err)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
