package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tugas/internal/deadline"
	"tugas/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "tugas.json"), nil)
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestLoad_EmptyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))
	require.NoError(t, os.WriteFile(s.Path, []byte("  \n"), 0644))

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoad_ExistingFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))
	body := `[
  {"nama_tugas": "Laporan praktikum", "mata_pelajaran": "Kimia", "deadline": "12-01-2024"},
  {"nama_tugas": "Esai", "mata_pelajaran": "Bahasa Indonesia", "deadline": "20-01-2024"}
]`
	require.NoError(t, os.WriteFile(s.Path, []byte(body), 0644))

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []task.Task{
		{Name: "Laporan praktikum", Subject: "Kimia", Deadline: "12-01-2024"},
		{Name: "Esai", Subject: "Bahasa Indonesia", Deadline: "20-01-2024"},
	}, tasks)
}

func TestLoad_Corrupt(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(filepath.Join(t.TempDir(), "tugas.json"), zap.New(core))
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0644))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrCorrupt)

	tasks, err := s.LoadOrEmpty()
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, logs.FilterMessage("ignoring unreadable task file").Len())
}

func TestSave_Format(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]task.Task{{Name: "PR <bab 2> & 3", Subject: "Matematika", Deadline: "01-02-2024"}}))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	want := `[
  {
    "nama_tugas": "PR <bab 2> & 3",
    "mata_pelajaran": "Matematika",
    "deadline": "01-02-2024"
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(nil))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]task.Task{{Name: "a", Subject: "b", Deadline: "01-01-2024"}}))
	require.NoError(t, s.Save([]task.Task{}))

	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tugas.json", entries[0].Name())
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add(task.Task{Name: "  Esai ", Subject: " Sejarah", Deadline: "15-01-2024 "})
	require.NoError(t, err)
	assert.Equal(t, task.Task{Name: "Esai", Subject: "Sejarah", Deadline: "15-01-2024"}, added)

	_, err = s.Add(task.Task{Name: "Kuis", Subject: "Fisika", Deadline: "16-01-2024"})
	require.NoError(t, err)

	tasks, err := s.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Esai", tasks[0].Name)
	assert.Equal(t, "Kuis", tasks[1].Name)
}

func TestAdd_Validation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(task.Task{Name: " ", Subject: "Fisika", Deadline: "16-01-2024"})
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = s.Add(task.Task{Name: "Kuis", Subject: "", Deadline: "16-01-2024"})
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = s.Add(task.Task{Name: "Kuis", Subject: "Fisika", Deadline: "2024-01-16"})
	assert.ErrorIs(t, err, deadline.ErrInvalidDeadline)

	_, statErr := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written for invalid input")
}

func TestAdd_ReplacesCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0755))
	require.NoError(t, os.WriteFile(s.Path, []byte("garbage"), 0644))

	_, err := s.Add(task.Task{Name: "Kuis", Subject: "Fisika", Deadline: "16-01-2024"})
	require.NoError(t, err)

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]task.Task{
		{Name: "a", Subject: "x", Deadline: "01-01-2024"},
		{Name: "b", Subject: "x", Deadline: "02-01-2024"},
		{Name: "c", Subject: "x", Deadline: "03-01-2024"},
	}))

	removed, err := s.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Name)

	tasks, err := s.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Name)
	assert.Equal(t, "c", tasks[1].Name)
}

func TestRemove_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]task.Task{{Name: "a", Subject: "x", Deadline: "01-01-2024"}}))

	for _, i := range []int{-1, 1, 5} {
		_, err := s.Remove(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestWatch(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Save([]task.Task{{Name: "a", Subject: "x", Deadline: "01-01-2024"}}))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled after save")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-changed:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]task.Task{
		{Name: "a", Subject: "x", Deadline: "01-01-2024"},
		{Name: "b", Subject: "x", Deadline: "02-01-2024"},
	}))

	b := task.Task{Name: "b", Subject: "x", Deadline: "02-01-2024"}
	updated, err := s.Update(1, b, task.Task{Name: " b2 ", Subject: "y", Deadline: "09-01-2024"})
	require.NoError(t, err)
	assert.Equal(t, "b2", updated.Name)

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []task.Task{
		{Name: "a", Subject: "x", Deadline: "01-01-2024"},
		{Name: "b2", Subject: "y", Deadline: "09-01-2024"},
	}, tasks)

	_, err = s.Update(2, b, task.Task{Name: "c", Subject: "x", Deadline: "01-01-2024"})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.Update(0, tasks[0], task.Task{Name: "c", Subject: "x", Deadline: "1-1-2024"})
	assert.ErrorIs(t, err, deadline.ErrInvalidDeadline)
}

func TestRemoveExpected_Changed(t *testing.T) {
	s := newTestStore(t)
	a := task.Task{Name: "a", Subject: "x", Deadline: "01-01-2024"}
	b := task.Task{Name: "b", Subject: "x", Deadline: "02-01-2024"}
	c := task.Task{Name: "c", Subject: "x", Deadline: "03-01-2024"}
	require.NoError(t, s.Save([]task.Task{a, b, c}))

	// Someone else removes "a"; index 1 now holds "c".
	require.NoError(t, s.Save([]task.Task{b, c}))

	_, err := s.RemoveExpected(1, b)
	assert.ErrorIs(t, err, ErrChanged)

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []task.Task{b, c}, tasks)

	removed, err := s.RemoveExpected(0, b)
	require.NoError(t, err)
	assert.Equal(t, b, removed)
}

func TestUpdate_Changed(t *testing.T) {
	s := newTestStore(t)
	a := task.Task{Name: "a", Subject: "x", Deadline: "01-01-2024"}
	b := task.Task{Name: "b", Subject: "x", Deadline: "02-01-2024"}
	require.NoError(t, s.Save([]task.Task{a, b}))

	edited := task.Task{Name: "a", Subject: "x", Deadline: "05-01-2024"}
	_, err := s.Update(1, a, edited)
	assert.ErrorIs(t, err, ErrChanged)

	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []task.Task{a, b}, tasks)
}
