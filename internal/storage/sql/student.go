package sql

import (
	"database/sql"
	"errors"
	"time"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// ========== Student Repository ==========

// SaveStudent 创建新学生
func (s *Store) SaveStudent(student *domain.Student) error {
	query := s.rebind(`
		INSERT INTO students (id, name, age, faculty_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now

	_, err := s.db.Exec(query,
		student.ID,
		student.Name,
		student.Age,
		student.FacultyID,
		student.CreatedAt,
		student.UpdatedAt,
	)
	return err
}

// GetStudent 根据ID获取学生
func (s *Store) GetStudent(id string) (*domain.Student, error) {
	query := s.rebind(`
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		WHERE id = ?
	`)
	return s.scanStudent(s.db.QueryRow(query, id))
}

// UpdateStudent 更新已存在的学生
func (s *Store) UpdateStudent(student *domain.Student) error {
	query := s.rebind(`
		UPDATE students
		SET name = ?, age = ?, faculty_id = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := s.db.Exec(query,
		student.Name,
		student.Age,
		student.FacultyID,
		time.Now().UTC(),
		student.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent 删除学生及其头像记录
func (s *Store) DeleteStudent(id string) error {
	// 头像记录随学生一并删除
	if _, err := s.db.Exec(s.rebind(`DELETE FROM avatars WHERE student_id = ?`), id); err != nil {
		return err
	}

	result, err := s.db.Exec(s.rebind(`DELETE FROM students WHERE id = ?`), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}
	return nil
}

// ListStudents 返回全部学生
func (s *Store) ListStudents() ([]domain.Student, error) {
	query := `
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		ORDER BY created_at, id
	`
	return s.queryStudents(query)
}

// ListStudentsByAge 返回指定年龄的学生
func (s *Store) ListStudentsByAge(age int) ([]domain.Student, error) {
	query := s.rebind(`
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		WHERE age = ?
		ORDER BY created_at, id
	`)
	return s.queryStudents(query, age)
}

// ListStudentsByAgeRange 返回年龄在区间内的学生
func (s *Store) ListStudentsByAgeRange(min, max int) ([]domain.Student, error) {
	query := s.rebind(`
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		WHERE age BETWEEN ? AND ?
		ORDER BY created_at, id
	`)
	return s.queryStudents(query, min, max)
}

// ListStudentsByFacultyID 返回指定院系的学生
func (s *Store) ListStudentsByFacultyID(facultyID string) ([]domain.Student, error) {
	query := s.rebind(`
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		WHERE faculty_id = ?
		ORDER BY created_at, id
	`)
	return s.queryStudents(query, facultyID)
}

// CountStudents 返回学生总数
func (s *Store) CountStudents() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}

// AverageStudentAge 返回学生平均年龄，无学生时为 0
func (s *Store) AverageStudentAge() (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`SELECT AVG(age) FROM students`).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// ListLastStudents 按创建顺序倒序返回最近的 limit 个学生
func (s *Store) ListLastStudents(limit int) ([]domain.Student, error) {
	query := s.rebind(`
		SELECT id, name, age, faculty_id, created_at, updated_at
		FROM students
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	return s.queryStudents(query, limit)
}

// ========== 辅助方法 ==========

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanStudent(row rowScanner) (*domain.Student, error) {
	var student domain.Student
	var facultyID sql.NullString

	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&facultyID,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrStudentNotFound
		}
		return nil, err
	}

	if facultyID.Valid {
		student.FacultyID = &facultyID.String
	}
	return &student, nil
}

func (s *Store) queryStudents(query string, args ...interface{}) ([]domain.Student, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]domain.Student, 0)
	for rows.Next() {
		student, err := s.scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}
	return students, rows.Err()
}
