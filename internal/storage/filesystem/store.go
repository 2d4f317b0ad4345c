package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store 文件系统存储实现，负责头像原图的落盘。
//
// 文件按 {basePath}/{studentID}.{ext} 确定性寻址：同一学生的重复上传
// 总是覆盖（先删除旧文件再以"必须不存在"模式新建），不同学生永不冲突。
type Store struct {
	basePath string // 头像存储根目录
}

// NewStore 创建文件系统存储实例
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("avatar base path is required")
	}

	// 确保基础目录存在
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{basePath: basePath}, nil
}

// AvatarPath 返回学生头像的确定性存储路径: {basePath}/{studentID}.{ext}
func (s *Store) AvatarPath(studentID, ext string) string {
	return filepath.Join(s.basePath, studentID+"."+ext)
}

// SaveAvatar 将上传流完整写入学生头像文件，返回最终路径与写入字节数。
//
// 写入步骤：创建父目录、删除同路径旧文件、以 O_EXCL 模式新建文件、
// 拷贝全部内容。任何一步失败都视为上传失败，调用方不得提交记录。
// 所有文件句柄在每条退出路径上（包括拷贝出错时）都会被关闭。
func (s *Store) SaveAvatar(studentID, ext string, src io.Reader) (string, int64, error) {
	avatarPath := s.AvatarPath(studentID, ext)

	if err := os.MkdirAll(filepath.Dir(avatarPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create avatar directory: %w", err)
	}

	// 删除旧文件；文件不存在不算错误
	if err := os.Remove(avatarPath); err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("failed to remove existing avatar: %w", err)
	}

	// O_EXCL：删除后目标仍存在属于异常，直接失败
	dst, err := os.OpenFile(avatarPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create avatar file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return "", 0, fmt.Errorf("failed to write avatar file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close avatar file: %w", err)
	}

	return avatarPath, written, nil
}

// RemoveAvatar 删除学生指定扩展名的头像文件；文件不存在不算错误。
//
// 用于换扩展名重传时清理旧原图，避免孤儿文件残留。
func (s *Store) RemoveAvatar(studentID, ext string) error {
	if err := os.Remove(s.AvatarPath(studentID, ext)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove avatar: %w", err)
	}
	return nil
}
