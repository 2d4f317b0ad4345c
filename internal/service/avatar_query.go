package service

import (
	"errors"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// 分页参数校验错误。
var (
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be at least 1")
)

// AvatarQueryService 提供头像记录的只读查询。
type AvatarQueryService struct {
	avatars storage.AvatarRepository
}

// NewAvatarQueryService 创建头像查询服务。
func NewAvatarQueryService(store storage.Store) *AvatarQueryService {
	return &AvatarQueryService{avatars: store}
}

// Find 返回学生的头像记录，不存在时返回空记录而不是错误。
func (s *AvatarQueryService) Find(studentID string) (*domain.Avatar, error) {
	avatar, err := s.avatars.GetAvatarByStudentID(studentID)
	if errors.Is(err, storage.ErrAvatarNotFound) {
		return &domain.Avatar{}, nil
	}
	if err != nil {
		return nil, err
	}
	return avatar, nil
}

// Page 返回指定页的头像记录，page 从 1 开始计数。
func (s *AvatarQueryService) Page(page, size int) ([]domain.Avatar, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	if size < 1 {
		return nil, ErrInvalidPageSize
	}
	return s.avatars.ListAvatars(page, size)
}
