package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Width 预览图固定宽度（像素）
const Width = 100

var (
	// ErrUnsupportedFormat 扩展名没有对应的编码器
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrImageTooNarrow 原图宽高比过于极端，无法按固定宽度缩放
	ErrImageTooNarrow = errors.New("image too narrow to generate preview")
)

// Generate 从磁盘上的原图生成适合入库的预览图二进制数据。
//
// 预览宽度固定为 100，高度按 originalHeight / (originalWidth / 100) 整数
// 截断计算；重新编码使用与源文件扩展名一致的编码器。原图宽度不足 100
// 或计算高度不为正时返回 ErrImageTooNarrow，而不是产生零高度的图像。
// 不修改源文件。
func Generate(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < Width {
		return nil, fmt.Errorf("%w: width %d < %d", ErrImageTooNarrow, width, Width)
	}

	// 与宽度固定为 100 对应的整数截断高度
	previewHeight := height / (width / Width)
	if previewHeight <= 0 {
		return nil, fmt.Errorf("%w: computed height %d", ErrImageTooNarrow, previewHeight)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Width, previewHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return encode(dst, extension(path))
}

// encode 以与源扩展名匹配的编码器重新编码预览图
func encode(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// extension 返回路径最后一个 . 之后的扩展名
func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
