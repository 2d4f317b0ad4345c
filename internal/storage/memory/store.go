package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

// Store 使用内存保存学生、院系与头像数据，主要用于开发验证与测试。
type Store struct {
	mu        sync.RWMutex
	students  map[string]*domain.Student
	faculties map[string]*domain.Faculty
	avatars   map[string]*domain.Avatar // avatarID -> avatar
	byStudent map[string]string         // studentID -> avatarID

	// 记录插入顺序，保证分页与 last-N 查询的稳定排序
	studentOrder []string
	avatarOrder  []string
}

// NewStore 创建一个内存存储实例。
func NewStore() *Store {
	return &Store{
		students:  make(map[string]*domain.Student),
		faculties: make(map[string]*domain.Faculty),
		avatars:   make(map[string]*domain.Avatar),
		byStudent: make(map[string]string),
	}
}

// ========== Student Repository ==========

// SaveStudent 保存学生信息。
func (s *Store) SaveStudent(student *domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; !ok {
		s.studentOrder = append(s.studentOrder, student.ID)
	}
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

// GetStudent 根据 ID 获取学生。
func (s *Store) GetStudent(id string) (*domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, storage.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

// UpdateStudent 更新已存在的学生。
func (s *Store) UpdateStudent(student *domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; !ok {
		return storage.ErrStudentNotFound
	}
	copied := *student
	copied.UpdatedAt = time.Now().UTC()
	s.students[student.ID] = &copied
	return nil
}

// DeleteStudent 删除学生及其头像记录。
func (s *Store) DeleteStudent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return storage.ErrStudentNotFound
	}
	delete(s.students, id)
	for i, sid := range s.studentOrder {
		if sid == id {
			s.studentOrder = append(s.studentOrder[:i], s.studentOrder[i+1:]...)
			break
		}
	}

	// 头像记录随学生一并删除
	if avatarID, ok := s.byStudent[id]; ok {
		delete(s.avatars, avatarID)
		delete(s.byStudent, id)
		for i, aid := range s.avatarOrder {
			if aid == avatarID {
				s.avatarOrder = append(s.avatarOrder[:i], s.avatarOrder[i+1:]...)
				break
			}
		}
	}
	return nil
}

// ListStudents 返回全部学生快照。
func (s *Store) ListStudents() ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listStudentsLocked(func(*domain.Student) bool { return true }), nil
}

// ListStudentsByAge 返回指定年龄的学生。
func (s *Store) ListStudentsByAge(age int) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listStudentsLocked(func(st *domain.Student) bool {
		return st.Age == age
	}), nil
}

// ListStudentsByAgeRange 返回年龄在 [min, max] 区间内的学生。
func (s *Store) ListStudentsByAgeRange(min, max int) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listStudentsLocked(func(st *domain.Student) bool {
		return st.Age >= min && st.Age <= max
	}), nil
}

// ListStudentsByFacultyID 返回指定院系的学生。
func (s *Store) ListStudentsByFacultyID(facultyID string) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listStudentsLocked(func(st *domain.Student) bool {
		return st.FacultyID != nil && *st.FacultyID == facultyID
	}), nil
}

// CountStudents 返回学生总数。
func (s *Store) CountStudents() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.students), nil
}

// AverageStudentAge 返回学生平均年龄，无学生时为 0。
func (s *Store) AverageStudentAge() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.students) == 0 {
		return 0, nil
	}
	sum := 0
	for _, st := range s.students {
		sum += st.Age
	}
	return float64(sum) / float64(len(s.students)), nil
}

// ListLastStudents 按创建顺序倒序返回最近的 limit 个学生。
func (s *Store) ListLastStudents(limit int) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Student, 0, limit)
	for i := len(s.studentOrder) - 1; i >= 0 && len(result) < limit; i-- {
		if st, ok := s.students[s.studentOrder[i]]; ok {
			result = append(result, *st)
		}
	}
	return result, nil
}

// listStudentsLocked 按插入顺序过滤学生，调用方需持有读锁。
func (s *Store) listStudentsLocked(match func(*domain.Student) bool) []domain.Student {
	result := make([]domain.Student, 0)
	for _, id := range s.studentOrder {
		if st, ok := s.students[id]; ok && match(st) {
			result = append(result, *st)
		}
	}
	return result
}

// ========== Faculty Repository ==========

// SaveFaculty 保存院系信息。
func (s *Store) SaveFaculty(faculty *domain.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *faculty
	s.faculties[faculty.ID] = &copied
	return nil
}

// GetFaculty 根据 ID 获取院系。
func (s *Store) GetFaculty(id string) (*domain.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	faculty, ok := s.faculties[id]
	if !ok {
		return nil, storage.ErrFacultyNotFound
	}
	copied := *faculty
	return &copied, nil
}

// UpdateFaculty 更新已存在的院系。
func (s *Store) UpdateFaculty(faculty *domain.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[faculty.ID]; !ok {
		return storage.ErrFacultyNotFound
	}
	copied := *faculty
	copied.UpdatedAt = time.Now().UTC()
	s.faculties[faculty.ID] = &copied
	return nil
}

// DeleteFaculty 删除院系。
func (s *Store) DeleteFaculty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[id]; !ok {
		return storage.ErrFacultyNotFound
	}
	delete(s.faculties, id)
	return nil
}

// ListFaculties 返回全部院系，按名称排序保证稳定。
func (s *Store) ListFaculties() ([]domain.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listFacultiesLocked(func(*domain.Faculty) bool { return true }), nil
}

// ListFacultiesByName 按名称查找院系（忽略大小写）。
func (s *Store) ListFacultiesByName(name string) ([]domain.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listFacultiesLocked(func(f *domain.Faculty) bool {
		return strings.EqualFold(f.Name, name)
	}), nil
}

// ListFacultiesByColor 按颜色查找院系（忽略大小写）。
func (s *Store) ListFacultiesByColor(color string) ([]domain.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listFacultiesLocked(func(f *domain.Faculty) bool {
		return strings.EqualFold(f.Color, color)
	}), nil
}

func (s *Store) listFacultiesLocked(match func(*domain.Faculty) bool) []domain.Faculty {
	result := make([]domain.Faculty, 0)
	for _, f := range s.faculties {
		if match(f) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// ========== Avatar Repository ==========

// GetAvatarByStudentID 根据学生 ID 获取头像记录。
func (s *Store) GetAvatarByStudentID(studentID string) (*domain.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	avatarID, ok := s.byStudent[studentID]
	if !ok {
		return nil, storage.ErrAvatarNotFound
	}
	copied := *s.avatars[avatarID]
	copied.Preview = append([]byte(nil), copied.Preview...)
	return &copied, nil
}

// UpsertAvatar 以 StudentID 为键写入头像记录：不存在则创建，存在则整体覆盖。
func (s *Store) UpsertAvatar(avatar *domain.Avatar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	copied := *avatar
	copied.Preview = append([]byte(nil), avatar.Preview...)

	if existingID, ok := s.byStudent[avatar.StudentID]; ok {
		// 覆盖写入时保留原记录的存储标识与创建时间
		copied.ID = existingID
		copied.CreatedAt = s.avatars[existingID].CreatedAt
		copied.UpdatedAt = now
		s.avatars[existingID] = &copied
		avatar.ID = existingID
		return nil
	}

	copied.CreatedAt = now
	copied.UpdatedAt = now
	s.avatars[copied.ID] = &copied
	s.byStudent[copied.StudentID] = copied.ID
	s.avatarOrder = append(s.avatarOrder, copied.ID)
	return nil
}

// ListAvatars 按插入顺序分页返回头像记录，page 从 1 开始。
func (s *Store) ListAvatars(page, size int) ([]domain.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if size < 1 {
		return []domain.Avatar{}, nil
	}

	// 越界页码收敛到首页，直接调用方传入非法值也不会越过切片边界
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.avatarOrder) {
		return []domain.Avatar{}, nil
	}

	end := offset + size
	if end > len(s.avatarOrder) {
		end = len(s.avatarOrder)
	}

	result := make([]domain.Avatar, 0, end-offset)
	for _, id := range s.avatarOrder[offset:end] {
		copied := *s.avatars[id]
		copied.Preview = append([]byte(nil), copied.Preview...)
		result = append(result, copied)
	}
	return result, nil
}

// ========== 生命周期 ==========

// Close 关闭存储（内存实现为空操作）。
func (s *Store) Close() error {
	return nil
}

// Health 检查存储健康状态。
func (s *Store) Health() error {
	return nil
}
