// Package store keeps the task list in a single JSON file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tugas/internal/deadline"
	"tugas/internal/task"
)

var (
	// ErrCorrupt means the file exists but is not a JSON task list.
	ErrCorrupt = errors.New("task file is corrupt")
	// ErrIndexOutOfRange is returned by Remove for a position outside the list.
	ErrIndexOutOfRange = errors.New("nomor tidak valid")
	// ErrEmptyField is returned by Add when the name or subject is blank.
	ErrEmptyField = errors.New("field must not be empty")
	// ErrChanged means the task at an index is no longer the one the caller
	// loaded, usually because the file was edited elsewhere.
	ErrChanged = errors.New("daftar tugas berubah")
)

// Store reads and writes the task file at Path.
type Store struct {
	Path string

	mu  sync.Mutex
	log *zap.Logger
}

// New returns a Store for path. A nil logger discards output.
func New(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{Path: path, log: log.Named("store")}
}

// Load returns the tasks in the file. A missing file is an empty list.
func (s *Store) Load() ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]task.Task, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []task.Task{}, nil
	}

	tasks := []task.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}
	s.log.Debug("loaded tasks", zap.String("path", s.Path), zap.Int("count", len(tasks)))
	return tasks, nil
}

// LoadOrEmpty is Load that turns a corrupt file into an empty list, logging
// a warning. Other errors are still returned.
func (s *Store) LoadOrEmpty() ([]task.Task, error) {
	tasks, err := s.Load()
	if errors.Is(err, ErrCorrupt) {
		s.log.Warn("ignoring unreadable task file", zap.Error(err))
		return []task.Task{}, nil
	}
	return tasks, err
}

// Save replaces the file contents with tasks.
func (s *Store) Save(tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(tasks)
}

func (s *Store) save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	// Write next to the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(dir, ".tugas-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}

	s.log.Debug("saved tasks", zap.String("path", s.Path), zap.Int("count", len(tasks)))
	return nil
}

// Validate trims t and checks it can be stored.
func Validate(t task.Task) (task.Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Subject = strings.TrimSpace(t.Subject)
	t.Deadline = strings.TrimSpace(t.Deadline)

	if t.Name == "" {
		return t, fmt.Errorf("nama tugas: %w", ErrEmptyField)
	}
	if t.Subject == "" {
		return t, fmt.Errorf("mata pelajaran: %w", ErrEmptyField)
	}
	if _, err := deadline.ParseDeadline(t.Deadline, time.Local); err != nil {
		return t, err
	}
	return t, nil
}

// Add validates t and appends it to the file.
func (s *Store) Add(t task.Task) (task.Task, error) {
	t, err := Validate(t)
	if err != nil {
		return t, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if errors.Is(err, ErrCorrupt) {
		s.log.Warn("overwriting unreadable task file", zap.Error(err))
		tasks = []task.Task{}
	} else if err != nil {
		return t, err
	}

	tasks = append(tasks, t)
	if err := s.save(tasks); err != nil {
		return t, err
	}
	s.log.Info("task added", zap.String("name", t.Name), zap.String("deadline", t.Deadline))
	return t, nil
}

// Remove deletes the task at the 0-based index i and returns it.
func (s *Store) Remove(i int) (task.Task, error) {
	return s.remove(i, nil)
}

// RemoveExpected is Remove that fails with ErrChanged unless the task at i
// still equals expected.
func (s *Store) RemoveExpected(i int, expected task.Task) (task.Task, error) {
	return s.remove(i, &expected)
}

func (s *Store) remove(i int, expected *task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return task.Task{}, err
	}
	if err := checkIndex(tasks, i, expected); err != nil {
		return task.Task{}, err
	}

	removed := tasks[i]
	tasks = append(tasks[:i], tasks[i+1:]...)
	if err := s.save(tasks); err != nil {
		return task.Task{}, err
	}
	s.log.Info("task removed", zap.String("name", removed.Name), zap.Int("index", i))
	return removed, nil
}

// Update validates t and replaces the task at the 0-based index i, provided
// that task still equals expected. Otherwise it returns ErrChanged.
func (s *Store) Update(i int, expected, t task.Task) (task.Task, error) {
	t, err := Validate(t)
	if err != nil {
		return t, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return t, err
	}
	if err := checkIndex(tasks, i, &expected); err != nil {
		return t, err
	}

	tasks[i] = t
	if err := s.save(tasks); err != nil {
		return t, err
	}
	s.log.Info("task updated", zap.String("name", t.Name), zap.Int("index", i))
	return t, nil
}

func checkIndex(tasks []task.Task, i int, expected *task.Task) error {
	if i < 0 || i >= len(tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i+1)
	}
	if expected != nil && tasks[i] != *expected {
		return fmt.Errorf("%w: nomor %d bukan lagi '%s'", ErrChanged, i+1, expected.Name)
	}
	return nil
}
