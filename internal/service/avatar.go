package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"school/backend/internal/domain"
	"school/backend/internal/lock"
	"school/backend/internal/preview"
	"school/backend/internal/storage"
	"school/backend/internal/storage/filesystem"
)

// ErrExtensionMissing 表示上传文件名缺少扩展名。
var ErrExtensionMissing = errors.New("filename has no extension")

// AvatarService 负责头像上传的完整编排：
// 原图写入文件系统、生成预览图、更新数据库记录。
//
// 同一学生的并发上传通过按学生 ID 加锁串行化，
// 避免文件写入与记录更新交错产生的最后写入者竞争。
type AvatarService struct {
	students storage.StudentRepository
	avatars  storage.AvatarRepository
	blobs    *filesystem.Store
	locks    *lock.KeyedMutex
	log      *zap.Logger
}

// NewAvatarService 创建头像上传服务。
func NewAvatarService(store storage.Store, blobs *filesystem.Store, log *zap.Logger) *AvatarService {
	return &AvatarService{
		students: store,
		avatars:  store,
		blobs:    blobs,
		locks:    lock.NewKeyedMutex(),
		log:      log,
	}
}

// UploadInput 描述一次头像上传。
type UploadInput struct {
	StudentID string
	Filename  string
	MediaType string
	Source    io.Reader
}

// Upload 执行一次头像上传。
//
// 任何一步失败都会中止后续步骤并返回携带原因的错误；
// 预览生成失败时原图保留在磁盘上，但数据库记录保持上传前状态。
func (s *AvatarService) Upload(input UploadInput) error {
	student, err := s.students.GetStudent(input.StudentID)
	if err != nil {
		return fmt.Errorf("failed to resolve student: %w", err)
	}

	ext, err := extensionOf(input.Filename)
	if err != nil {
		return err
	}

	s.locks.Lock(student.ID)
	defer s.locks.Unlock(student.ID)

	existing, err := s.avatars.GetAvatarByStudentID(student.ID)
	if err != nil && !errors.Is(err, storage.ErrAvatarNotFound) {
		return fmt.Errorf("failed to load avatar record: %w", err)
	}

	// 扩展名变化时旧原图不会被覆盖，需要先删除。
	if existing != nil {
		oldExt := strings.TrimPrefix(filepath.Ext(existing.FilePath), ".")
		if oldExt != ext {
			if err := s.blobs.RemoveAvatar(student.ID, oldExt); err != nil {
				return fmt.Errorf("failed to remove previous avatar file: %w", err)
			}
		}
	}

	path, size, err := s.blobs.SaveAvatar(student.ID, ext, input.Source)
	if err != nil {
		return fmt.Errorf("failed to store avatar file: %w", err)
	}

	previewData, err := preview.Generate(path)
	if err != nil {
		s.log.Warn("avatar preview generation failed",
			zap.String("student_id", student.ID),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("failed to generate avatar preview: %w", err)
	}

	avatar := existing
	if avatar == nil {
		avatar = &domain.Avatar{
			ID:        uuid.NewString(),
			StudentID: student.ID,
			CreatedAt: time.Now().UTC(),
		}
	}
	avatar.FilePath = path
	avatar.FileSize = size
	avatar.MediaType = input.MediaType
	avatar.Preview = previewData

	if err := s.avatars.UpsertAvatar(avatar); err != nil {
		return fmt.Errorf("failed to save avatar record: %w", err)
	}

	s.log.Info("avatar uploaded",
		zap.String("student_id", student.ID),
		zap.String("path", path),
		zap.Int64("size", size),
	)
	return nil
}

// extensionOf 取文件名最后一个点之后的扩展名。
func extensionOf(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", ErrExtensionMissing
	}
	return filename[idx+1:], nil
}
