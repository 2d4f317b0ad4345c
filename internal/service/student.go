package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"school/backend/internal/domain"
	"school/backend/internal/pool"
	"school/backend/internal/storage"
)

// StudentService 封装学生相关业务操作。
type StudentService struct {
	repo storage.StudentRepository
	fac  storage.FacultyRepository
	pool *pool.WorkerPool
	log  *zap.Logger
}

// NewStudentService 创建学生业务服务。
func NewStudentService(store storage.Store, workers *pool.WorkerPool, log *zap.Logger) *StudentService {
	return &StudentService{
		repo: store,
		fac:  store,
		pool: workers,
		log:  log,
	}
}

// CreateStudentInput 定义创建学生所需的输入。
type CreateStudentInput struct {
	Name      string
	Age       int
	FacultyID *string
}

// Create 创建新学生。
func (s *StudentService) Create(input CreateStudentInput) (*domain.Student, error) {
	s.log.Debug("creating student", zap.String("name", input.Name))

	if input.FacultyID != nil {
		if _, err := s.fac.GetFaculty(*input.FacultyID); err != nil {
			return nil, err
		}
	}

	student := &domain.Student{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Age:       input.Age,
		FacultyID: input.FacultyID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveStudent(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Get 根据 ID 获取学生。
func (s *StudentService) Get(id string) (*domain.Student, error) {
	return s.repo.GetStudent(id)
}

// Update 更新已存在的学生。
func (s *StudentService) Update(id string, input CreateStudentInput) (*domain.Student, error) {
	s.log.Debug("updating student", zap.String("id", id))

	student, err := s.repo.GetStudent(id)
	if err != nil {
		return nil, err
	}

	if input.FacultyID != nil {
		if _, err := s.fac.GetFaculty(*input.FacultyID); err != nil {
			return nil, err
		}
	}

	student.Name = input.Name
	student.Age = input.Age
	student.FacultyID = input.FacultyID
	if err := s.repo.UpdateStudent(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete 删除指定学生。
func (s *StudentService) Delete(id string) error {
	s.log.Debug("deleting student", zap.String("id", id))
	return s.repo.DeleteStudent(id)
}

// ByAge 返回指定年龄的学生。
func (s *StudentService) ByAge(age int) ([]domain.Student, error) {
	return s.repo.ListStudentsByAge(age)
}

// ByAgeRange 返回年龄在 [min, max] 区间内的学生。
func (s *StudentService) ByAgeRange(min, max int) ([]domain.Student, error) {
	if min > max {
		s.log.Warn("invalid age range", zap.Int("min", min), zap.Int("max", max))
	}
	return s.repo.ListStudentsByAgeRange(min, max)
}

// FacultyOf 返回学生所属的院系。
func (s *StudentService) FacultyOf(studentID string) (*domain.Faculty, error) {
	student, err := s.repo.GetStudent(studentID)
	if err != nil {
		return nil, err
	}
	if student.FacultyID == nil {
		return nil, storage.ErrFacultyNotFound
	}
	return s.fac.GetFaculty(*student.FacultyID)
}

// Count 返回学生总数。
func (s *StudentService) Count() (int, error) {
	return s.repo.CountStudents()
}

// AverageAge 返回学生平均年龄。
func (s *StudentService) AverageAge() (float64, error) {
	return s.repo.AverageStudentAge()
}

// LastFive 返回最近创建的五个学生。
func (s *StudentService) LastFive() ([]domain.Student, error) {
	return s.repo.ListLastStudents(5)
}

// FirstSix 返回最早创建的六个学生。
func (s *StudentService) FirstSix() ([]domain.Student, error) {
	students, err := s.repo.ListStudents()
	if err != nil {
		return nil, err
	}
	if len(students) > 6 {
		students = students[:6]
	}
	return students, nil
}

// NamesStartingWith 返回以指定字母开头的学生姓名（大写、排序）。
func (s *StudentService) NamesStartingWith(letter string) ([]string, error) {
	students, err := s.repo.ListStudents()
	if err != nil {
		return nil, err
	}

	prefix := strings.ToUpper(letter)
	names := make([]string, 0)
	for _, st := range students {
		name := strings.ToUpper(st.Name)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// PrintNamesParallel 在两个工作协程上打印全部学生姓名。
//
// 两个协程共享一个游标，游标由互斥锁保护，每个姓名恰好被打印一次。
// 返回实际打印顺序，便于调用方观察交错执行。
func (s *StudentService) PrintNamesParallel() ([]string, error) {
	students, err := s.repo.ListStudents()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	cursor := 0
	printed := make([]string, 0, len(students))

	var wg sync.WaitGroup
	worker := func(workerID int) {
		defer wg.Done()
		for {
			mu.Lock()
			if cursor >= len(students) {
				mu.Unlock()
				return
			}
			name := students[cursor].Name
			cursor++
			printed = append(printed, name)
			mu.Unlock()

			s.log.Info("student name",
				zap.Int("worker", workerID),
				zap.String("name", name),
			)
		}
	}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		id := i
		s.pool.Submit(func() { worker(id) })
	}
	wg.Wait()

	return printed, nil
}
