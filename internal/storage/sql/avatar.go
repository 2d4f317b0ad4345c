package sql

import (
	"database/sql"
	"errors"
	"time"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// ========== Avatar Repository ==========

// GetAvatarByStudentID 根据学生ID获取头像记录
func (s *Store) GetAvatarByStudentID(studentID string) (*domain.Avatar, error) {
	query := s.rebind(`
		SELECT id, student_id, file_path, file_size, media_type, preview, created_at, updated_at
		FROM avatars
		WHERE student_id = ?
	`)
	return s.scanAvatar(s.db.QueryRow(query, studentID))
}

// UpsertAvatar 以 student_id 为键写入头像记录：不存在则创建，存在则整体覆盖
func (s *Store) UpsertAvatar(avatar *domain.Avatar) error {
	now := time.Now().UTC()

	var existingID string
	err := s.db.QueryRow(
		s.rebind(`SELECT id FROM avatars WHERE student_id = ?`),
		avatar.StudentID,
	).Scan(&existingID)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		// 不存在：插入新记录
		query := s.rebind(`
			INSERT INTO avatars (id, student_id, file_path, file_size, media_type, preview, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		_, err = s.db.Exec(query,
			avatar.ID,
			avatar.StudentID,
			avatar.FilePath,
			avatar.FileSize,
			avatar.MediaType,
			avatar.Preview,
			now,
			now,
		)
		return err
	}

	// 已存在：保留存储标识，整体覆盖内容
	avatar.ID = existingID
	query := s.rebind(`
		UPDATE avatars
		SET file_path = ?, file_size = ?, media_type = ?, preview = ?, updated_at = ?
		WHERE id = ?
	`)
	_, err = s.db.Exec(query,
		avatar.FilePath,
		avatar.FileSize,
		avatar.MediaType,
		avatar.Preview,
		now,
		existingID,
	)
	return err
}

// ListAvatars 按创建顺序分页返回头像记录，page 从 1 开始
func (s *Store) ListAvatars(page, size int) ([]domain.Avatar, error) {
	if size < 1 {
		return []domain.Avatar{}, nil
	}

	// 与内存实现一致，非法页码收敛到首页而不是发出负 OFFSET 查询
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	query := s.rebind(`
		SELECT id, student_id, file_path, file_size, media_type, preview, created_at, updated_at
		FROM avatars
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`)

	rows, err := s.db.Query(query, size, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	avatars := make([]domain.Avatar, 0, size)
	for rows.Next() {
		avatar, err := s.scanAvatar(rows)
		if err != nil {
			return nil, err
		}
		avatars = append(avatars, *avatar)
	}
	return avatars, rows.Err()
}

// ========== 辅助方法 ==========

func (s *Store) scanAvatar(row rowScanner) (*domain.Avatar, error) {
	var avatar domain.Avatar
	err := row.Scan(
		&avatar.ID,
		&avatar.StudentID,
		&avatar.FilePath,
		&avatar.FileSize,
		&avatar.MediaType,
		&avatar.Preview,
		&avatar.CreatedAt,
		&avatar.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAvatarNotFound
		}
		return nil, err
	}
	return &avatar, nil
}
