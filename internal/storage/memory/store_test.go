package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school/backend/internal/domain"
	"school/backend/internal/storage"
)

func newStudent(name string, age int) *domain.Student {
	return &domain.Student{
		ID:   uuid.NewString(),
		Name: name,
		Age:  age,
	}
}

// TestStudentCRUD 测试学生的基础增删改查
func TestStudentCRUD(t *testing.T) {
	store := NewStore()

	student := newStudent("Harry Potter", 11)
	require.NoError(t, store.SaveStudent(student))

	t.Run("get existing student", func(t *testing.T) {
		found, err := store.GetStudent(student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Harry Potter", found.Name)
		assert.Equal(t, 11, found.Age)
	})

	t.Run("get missing student", func(t *testing.T) {
		_, err := store.GetStudent("no-such-id")
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)
	})

	t.Run("update student", func(t *testing.T) {
		student.Name = "Harry James Potter"
		require.NoError(t, store.UpdateStudent(student))

		found, err := store.GetStudent(student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Harry James Potter", found.Name)
	})

	t.Run("update missing student", func(t *testing.T) {
		err := store.UpdateStudent(newStudent("Nobody", 12))
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)
	})

	t.Run("delete student", func(t *testing.T) {
		require.NoError(t, store.DeleteStudent(student.ID))
		_, err := store.GetStudent(student.ID)
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)
	})
}

// TestStudentQueries 测试按年龄过滤与聚合查询
func TestStudentQueries(t *testing.T) {
	store := NewStore()

	for _, age := range []int{11, 12, 12, 14} {
		require.NoError(t, store.SaveStudent(newStudent("Student", age)))
	}

	t.Run("list by age", func(t *testing.T) {
		students, err := store.ListStudentsByAge(12)
		require.NoError(t, err)
		assert.Len(t, students, 2)
	})

	t.Run("list by age range", func(t *testing.T) {
		students, err := store.ListStudentsByAgeRange(12, 14)
		require.NoError(t, err)
		assert.Len(t, students, 3)
	})

	t.Run("count", func(t *testing.T) {
		count, err := store.CountStudents()
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("average age", func(t *testing.T) {
		avg, err := store.AverageStudentAge()
		require.NoError(t, err)
		assert.InDelta(t, 12.25, avg, 0.0001)
	})

	t.Run("last students ordered newest first", func(t *testing.T) {
		last, err := store.ListLastStudents(2)
		require.NoError(t, err)
		require.Len(t, last, 2)
		assert.Equal(t, 14, last[0].Age)
	})
}

// TestFacultyRepository 测试院系存取与忽略大小写查找
func TestFacultyRepository(t *testing.T) {
	store := NewStore()

	faculty := &domain.Faculty{ID: uuid.NewString(), Name: "Gryffindor", Color: "Red"}
	require.NoError(t, store.SaveFaculty(faculty))

	t.Run("find by name case-insensitive", func(t *testing.T) {
		found, err := store.ListFacultiesByName("gryffindor")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Gryffindor", found[0].Name)
	})

	t.Run("find by color case-insensitive", func(t *testing.T) {
		found, err := store.ListFacultiesByColor("RED")
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("delete faculty", func(t *testing.T) {
		require.NoError(t, store.DeleteFaculty(faculty.ID))
		_, err := store.GetFaculty(faculty.ID)
		assert.ErrorIs(t, err, storage.ErrFacultyNotFound)
	})
}

// TestAvatarUpsert 测试头像记录的创建与覆盖语义
func TestAvatarUpsert(t *testing.T) {
	store := NewStore()
	studentID := uuid.NewString()

	t.Run("get missing avatar", func(t *testing.T) {
		_, err := store.GetAvatarByStudentID(studentID)
		assert.ErrorIs(t, err, storage.ErrAvatarNotFound)
	})

	first := &domain.Avatar{
		ID:        uuid.NewString(),
		StudentID: studentID,
		FilePath:  "/avatars/" + studentID + ".png",
		FileSize:  1024,
		MediaType: "image/png",
		Preview:   []byte{0x89, 0x50},
	}
	require.NoError(t, store.UpsertAvatar(first))

	t.Run("second upsert overwrites in place", func(t *testing.T) {
		second := &domain.Avatar{
			ID:        uuid.NewString(),
			StudentID: studentID,
			FilePath:  "/avatars/" + studentID + ".jpg",
			FileSize:  2048,
			MediaType: "image/jpeg",
			Preview:   []byte{0xFF, 0xD8},
		}
		require.NoError(t, store.UpsertAvatar(second))

		found, err := store.GetAvatarByStudentID(studentID)
		require.NoError(t, err)
		// 记录标识保持不变，内容被整体覆盖
		assert.Equal(t, first.ID, found.ID)
		assert.Equal(t, int64(2048), found.FileSize)
		assert.Equal(t, "image/jpeg", found.MediaType)
		assert.Equal(t, []byte{0xFF, 0xD8}, found.Preview)

		// 仍然只有一条记录
		all, err := store.ListAvatars(1, 10)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

// TestAvatarPagination 测试头像分页的稳定与不相交
func TestAvatarPagination(t *testing.T) {
	store := NewStore()

	for i := 0; i < 15; i++ {
		avatar := &domain.Avatar{
			ID:        uuid.NewString(),
			StudentID: uuid.NewString(),
			FileSize:  int64(i),
		}
		require.NoError(t, store.UpsertAvatar(avatar))
	}

	page1, err := store.ListAvatars(1, 10)
	require.NoError(t, err)
	page2, err := store.ListAvatars(2, 10)
	require.NoError(t, err)

	assert.Len(t, page1, 10)
	assert.Len(t, page2, 5)

	seen := make(map[string]bool)
	for _, a := range append(page1, page2...) {
		assert.False(t, seen[a.ID], "pages must be disjoint")
		seen[a.ID] = true
	}

	t.Run("page past end is empty", func(t *testing.T) {
		page3, err := store.ListAvatars(3, 10)
		require.NoError(t, err)
		assert.Empty(t, page3)
	})

	t.Run("repeated read is stable", func(t *testing.T) {
		again, err := store.ListAvatars(1, 10)
		require.NoError(t, err)
		assert.Equal(t, page1, again)
	})

	t.Run("page below one clamps to first page", func(t *testing.T) {
		zero, err := store.ListAvatars(0, 10)
		require.NoError(t, err)
		assert.Equal(t, page1, zero)

		negative, err := store.ListAvatars(-3, 10)
		require.NoError(t, err)
		assert.Equal(t, page1, negative)
	})

	t.Run("non-positive size is empty", func(t *testing.T) {
		empty, err := store.ListAvatars(1, 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
