package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// FacultyService 封装院系相关业务操作。
type FacultyService struct {
	repo     storage.FacultyRepository
	students storage.StudentRepository
	log      *zap.Logger
}

// NewFacultyService 创建院系业务服务。
func NewFacultyService(store storage.Store, log *zap.Logger) *FacultyService {
	return &FacultyService{
		repo:     store,
		students: store,
		log:      log,
	}
}

// CreateFacultyInput 定义创建院系所需的输入。
type CreateFacultyInput struct {
	Name  string
	Color string
}

// Create 创建新院系。
func (s *FacultyService) Create(input CreateFacultyInput) (*domain.Faculty, error) {
	s.log.Debug("creating faculty", zap.String("name", input.Name))

	faculty := &domain.Faculty{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveFaculty(faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// Get 根据 ID 获取院系。
func (s *FacultyService) Get(id string) (*domain.Faculty, error) {
	return s.repo.GetFaculty(id)
}

// Update 更新已存在的院系。
func (s *FacultyService) Update(id string, input CreateFacultyInput) (*domain.Faculty, error) {
	s.log.Debug("updating faculty", zap.String("id", id))

	faculty, err := s.repo.GetFaculty(id)
	if err != nil {
		return nil, err
	}

	faculty.Name = input.Name
	faculty.Color = input.Color
	if err := s.repo.UpdateFaculty(faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// Delete 删除指定院系。
func (s *FacultyService) Delete(id string) error {
	s.log.Debug("deleting faculty", zap.String("id", id))
	return s.repo.DeleteFaculty(id)
}

// Find 按名称或颜色查找院系，两者都为空时返回全部院系。
// 名称匹配不区分大小写。
func (s *FacultyService) Find(name, color string) ([]domain.Faculty, error) {
	switch {
	case name != "":
		return s.repo.ListFacultiesByName(name)
	case color != "":
		return s.repo.ListFacultiesByColor(color)
	default:
		return s.repo.ListFaculties()
	}
}

// StudentsOf 返回指定院系的全部学生。
func (s *FacultyService) StudentsOf(facultyID string) ([]domain.Student, error) {
	if _, err := s.repo.GetFaculty(facultyID); err != nil {
		return nil, err
	}
	return s.students.ListStudentsByFacultyID(facultyID)
}

// LongestName 返回名称最长的院系名，没有院系时返回空串。
func (s *FacultyService) LongestName() (string, error) {
	faculties, err := s.repo.ListFaculties()
	if err != nil {
		return "", err
	}

	longest := ""
	for _, f := range faculties {
		if len(f.Name) > len(longest) {
			longest = f.Name
		}
	}
	return longest, nil
}
