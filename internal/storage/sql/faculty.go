package sql

import (
	"database/sql"
	"errors"
	"time"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// ========== Faculty Repository ==========

// SaveFaculty 创建新院系
func (s *Store) SaveFaculty(faculty *domain.Faculty) error {
	query := s.rebind(`
		INSERT INTO faculties (id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	now := time.Now().UTC()
	if faculty.CreatedAt.IsZero() {
		faculty.CreatedAt = now
	}
	faculty.UpdatedAt = now

	_, err := s.db.Exec(query,
		faculty.ID,
		faculty.Name,
		faculty.Color,
		faculty.CreatedAt,
		faculty.UpdatedAt,
	)
	return err
}

// GetFaculty 根据ID获取院系
func (s *Store) GetFaculty(id string) (*domain.Faculty, error) {
	query := s.rebind(`
		SELECT id, name, color, created_at, updated_at
		FROM faculties
		WHERE id = ?
	`)
	return s.scanFaculty(s.db.QueryRow(query, id))
}

// UpdateFaculty 更新已存在的院系
func (s *Store) UpdateFaculty(faculty *domain.Faculty) error {
	query := s.rebind(`
		UPDATE faculties
		SET name = ?, color = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := s.db.Exec(query,
		faculty.Name,
		faculty.Color,
		time.Now().UTC(),
		faculty.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrFacultyNotFound
	}
	return nil
}

// DeleteFaculty 删除院系
func (s *Store) DeleteFaculty(id string) error {
	result, err := s.db.Exec(s.rebind(`DELETE FROM faculties WHERE id = ?`), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrFacultyNotFound
	}
	return nil
}

// ListFaculties 返回全部院系
func (s *Store) ListFaculties() ([]domain.Faculty, error) {
	query := `
		SELECT id, name, color, created_at, updated_at
		FROM faculties
		ORDER BY name, id
	`
	return s.queryFaculties(query)
}

// ListFacultiesByName 按名称查找院系（忽略大小写）
func (s *Store) ListFacultiesByName(name string) ([]domain.Faculty, error) {
	query := s.rebind(`
		SELECT id, name, color, created_at, updated_at
		FROM faculties
		WHERE lower(name) = lower(?)
		ORDER BY name, id
	`)
	return s.queryFaculties(query, name)
}

// ListFacultiesByColor 按颜色查找院系（忽略大小写）
func (s *Store) ListFacultiesByColor(color string) ([]domain.Faculty, error) {
	query := s.rebind(`
		SELECT id, name, color, created_at, updated_at
		FROM faculties
		WHERE lower(color) = lower(?)
		ORDER BY name, id
	`)
	return s.queryFaculties(query, color)
}

// ========== 辅助方法 ==========

func (s *Store) scanFaculty(row rowScanner) (*domain.Faculty, error) {
	var faculty domain.Faculty
	err := row.Scan(
		&faculty.ID,
		&faculty.Name,
		&faculty.Color,
		&faculty.CreatedAt,
		&faculty.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFacultyNotFound
		}
		return nil, err
	}
	return &faculty, nil
}

func (s *Store) queryFaculties(query string, args ...interface{}) ([]domain.Faculty, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faculties := make([]domain.Faculty, 0)
	for rows.Next() {
		faculty, err := s.scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, *faculty)
	}
	return faculties, rows.Err()
}
