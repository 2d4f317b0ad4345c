package storage

import (
	"errors"

	"school/backend/internal/domain"
)

var (
	// ErrStudentNotFound 学生未找到错误
	ErrStudentNotFound = errors.New("student not found")
	// ErrFacultyNotFound 院系未找到错误
	ErrFacultyNotFound = errors.New("faculty not found")
	// ErrAvatarNotFound 头像记录未找到错误
	ErrAvatarNotFound = errors.New("avatar not found")
)

// StudentRepository 定义学生数据存取操作。
type StudentRepository interface {
	SaveStudent(student *domain.Student) error
	GetStudent(id string) (*domain.Student, error)
	UpdateStudent(student *domain.Student) error
	DeleteStudent(id string) error
	ListStudents() ([]domain.Student, error)
	ListStudentsByAge(age int) ([]domain.Student, error)
	ListStudentsByAgeRange(min, max int) ([]domain.Student, error)
	ListStudentsByFacultyID(facultyID string) ([]domain.Student, error)
	CountStudents() (int, error)
	AverageStudentAge() (float64, error)
	ListLastStudents(limit int) ([]domain.Student, error) // 按创建顺序倒序
}

// FacultyRepository 定义院系数据存取操作。
type FacultyRepository interface {
	SaveFaculty(faculty *domain.Faculty) error
	GetFaculty(id string) (*domain.Faculty, error)
	UpdateFaculty(faculty *domain.Faculty) error
	DeleteFaculty(id string) error
	ListFaculties() ([]domain.Faculty, error)
	ListFacultiesByName(name string) ([]domain.Faculty, error)   // 忽略大小写
	ListFacultiesByColor(color string) ([]domain.Faculty, error) // 忽略大小写
}

// AvatarRepository 定义头像记录的存取操作。
//
// UpsertAvatar 以 StudentID 为键：不存在则创建，存在则整体覆盖。
// ListAvatars 的 page 从 1 开始计数，内部换算为 0 基偏移量；
// 排序在无并发写入时保持稳定。
type AvatarRepository interface {
	GetAvatarByStudentID(studentID string) (*domain.Avatar, error)
	UpsertAvatar(avatar *domain.Avatar) error
	ListAvatars(page, size int) ([]domain.Avatar, error)
}

// Store 聚合所有存储接口。
type Store interface {
	StudentRepository
	FacultyRepository
	AvatarRepository

	Close() error
	Health() error
}
