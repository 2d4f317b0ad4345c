package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school/backend/internal/pool"
	"school/backend/internal/storage"
	"school/backend/internal/storage/memory"
)

func newStudentService(t *testing.T) (*StudentService, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	workers := pool.NewWorkerPool(2, 16)
	workers.Start(context.Background())
	t.Cleanup(workers.Stop)

	return NewStudentService(store, workers, zap.NewNop()), store
}

func TestStudentLifecycle(t *testing.T) {
	svc, _ := newStudentService(t)

	t.Run("创建并查询学生", func(t *testing.T) {
		created, err := svc.Create(CreateStudentInput{Name: "张三", Age: 12})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := svc.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "张三", got.Name)
		assert.Equal(t, 12, got.Age)
	})

	t.Run("更新学生", func(t *testing.T) {
		created, err := svc.Create(CreateStudentInput{Name: "李四", Age: 11})
		require.NoError(t, err)

		updated, err := svc.Update(created.ID, CreateStudentInput{Name: "李四", Age: 13})
		require.NoError(t, err)
		assert.Equal(t, 13, updated.Age)
	})

	t.Run("删除后查询返回未找到", func(t *testing.T) {
		created, err := svc.Create(CreateStudentInput{Name: "王五", Age: 14})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(created.ID))

		_, err = svc.Get(created.ID)
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)
	})

	t.Run("院系不存在时创建失败", func(t *testing.T) {
		facultyID := "missing-faculty"
		_, err := svc.Create(CreateStudentInput{Name: "赵六", Age: 12, FacultyID: &facultyID})
		assert.ErrorIs(t, err, storage.ErrFacultyNotFound)
	})
}

func TestStudentNamesStartingWith(t *testing.T) {
	svc, _ := newStudentService(t)

	for _, name := range []string{"Harry", "hermione", "Ron", "Hannah"} {
		_, err := svc.Create(CreateStudentInput{Name: name, Age: 12})
		require.NoError(t, err)
	}

	names, err := svc.NamesStartingWith("h")
	require.NoError(t, err)
	assert.Equal(t, []string{"HANNAH", "HARRY", "HERMIONE"}, names)
}

func TestStudentAggregates(t *testing.T) {
	svc, _ := newStudentService(t)

	ages := []int{11, 12, 13, 14, 15, 16}
	for _, age := range ages {
		_, err := svc.Create(CreateStudentInput{Name: "学生", Age: age})
		require.NoError(t, err)
	}

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	avg, err := svc.AverageAge()
	require.NoError(t, err)
	assert.InDelta(t, 13.5, avg, 0.001)

	last, err := svc.LastFive()
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestStudentFirstSix(t *testing.T) {
	svc, _ := newStudentService(t)

	t.Run("不足六个时返回全部", func(t *testing.T) {
		_, err := svc.Create(CreateStudentInput{Name: "Harry", Age: 12})
		require.NoError(t, err)

		students, err := svc.FirstSix()
		require.NoError(t, err)
		assert.Len(t, students, 1)
	})

	t.Run("按创建顺序返回前六个", func(t *testing.T) {
		for _, name := range []string{"Ron", "Hermione", "Neville", "Luna", "Ginny", "Cho", "Draco"} {
			_, err := svc.Create(CreateStudentInput{Name: name, Age: 12})
			require.NoError(t, err)
		}

		students, err := svc.FirstSix()
		require.NoError(t, err)
		require.Len(t, students, 6)
		assert.Equal(t, "Harry", students[0].Name)
		assert.Equal(t, "Ginny", students[5].Name)
	})
}

func TestPrintNamesParallel(t *testing.T) {
	svc, _ := newStudentService(t)

	names := []string{"Harry", "Hermione", "Ron", "Neville", "Luna", "Ginny"}
	for _, name := range names {
		_, err := svc.Create(CreateStudentInput{Name: name, Age: 12})
		require.NoError(t, err)
	}

	printed, err := svc.PrintNamesParallel()
	require.NoError(t, err)

	// 每个姓名恰好被打印一次
	assert.ElementsMatch(t, names, printed)
}
