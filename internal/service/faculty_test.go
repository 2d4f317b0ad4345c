package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school/backend/internal/storage"
	"school/backend/internal/storage/memory"
)

func newFacultyService(t *testing.T) (*FacultyService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewFacultyService(store, zap.NewNop()), store
}

func TestFacultyLifecycle(t *testing.T) {
	svc, _ := newFacultyService(t)

	created, err := svc.Create(CreateFacultyInput{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gryffindor", got.Name)

	updated, err := svc.Update(created.ID, CreateFacultyInput{Name: "Gryffindor", Color: "scarlet"})
	require.NoError(t, err)
	assert.Equal(t, "scarlet", updated.Color)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, storage.ErrFacultyNotFound)
}

func TestFacultyFind(t *testing.T) {
	svc, _ := newFacultyService(t)

	_, err := svc.Create(CreateFacultyInput{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)
	_, err = svc.Create(CreateFacultyInput{Name: "Slytherin", Color: "green"})
	require.NoError(t, err)

	t.Run("按名称查找不区分大小写", func(t *testing.T) {
		got, err := svc.Find("gryffindor", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Gryffindor", got[0].Name)
	})

	t.Run("按颜色查找", func(t *testing.T) {
		got, err := svc.Find("", "green")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Slytherin", got[0].Name)
	})

	t.Run("无条件时返回全部", func(t *testing.T) {
		got, err := svc.Find("", "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestFacultyStudentsOf(t *testing.T) {
	svc, store := newFacultyService(t)

	faculty, err := svc.Create(CreateFacultyInput{Name: "Ravenclaw", Color: "blue"})
	require.NoError(t, err)

	students := NewStudentService(store, nil, zap.NewNop())
	_, err = students.Create(CreateStudentInput{Name: "Luna", Age: 12, FacultyID: &faculty.ID})
	require.NoError(t, err)
	_, err = students.Create(CreateStudentInput{Name: "Cho", Age: 13, FacultyID: &faculty.ID})
	require.NoError(t, err)
	_, err = students.Create(CreateStudentInput{Name: "Harry", Age: 12})
	require.NoError(t, err)

	got, err := svc.StudentsOf(faculty.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.StudentsOf("missing")
	assert.ErrorIs(t, err, storage.ErrFacultyNotFound)
}

func TestFacultyLongestName(t *testing.T) {
	svc, _ := newFacultyService(t)

	t.Run("没有院系时返回空串", func(t *testing.T) {
		name, err := svc.LongestName()
		require.NoError(t, err)
		assert.Empty(t, name)
	})

	t.Run("返回最长名称", func(t *testing.T) {
		for _, f := range []CreateFacultyInput{
			{Name: "Gryffindor", Color: "red"},
			{Name: "Hufflepuff", Color: "yellow"},
			{Name: "Slytherin", Color: "green"},
		} {
			_, err := svc.Create(f)
			require.NoError(t, err)
		}

		name, err := svc.LongestName()
		require.NoError(t, err)
		assert.Contains(t, []string{"Gryffindor", "Hufflepuff"}, name)
	})
}
