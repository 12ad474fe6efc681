// Package memory provides an in-memory implementation of storage.Storage.
// It backs local runs (storage: memory in the config file) and the
// end-to-end HTTP tests. Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
)

// Memory keeps students in a map plus an insertion-order index.
type Memory struct {
	mu       sync.RWMutex
	students map[string]types.Student
	order    []string
}

var _ storage.Storage = (*Memory)(nil)

// New returns an empty store.
func New() *Memory {
	return &Memory{students: make(map[string]types.Student)}
}

func (m *Memory) CreateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[student.ID]; ok {
		return types.Student{}, fmt.Errorf("duplicate id %s: %w", student.ID, storage.ErrConflict)
	}

	stored := clone(student)
	m.students[student.ID] = stored
	m.order = append(m.order, student.ID)

	return clone(stored), nil
}

func (m *Memory) GetStudentByID(_ context.Context, id string) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.students[id]
	if !ok {
		return types.Student{}, fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
	}
	return clone(student), nil
}

func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.order))
	for _, id := range m.order {
		students = append(students, clone(m.students[id]))
	}
	return students, nil
}

func (m *Memory) UpdateStudentByID(_ context.Context, id string, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
	}

	updated := clone(student)
	updated.ID = id
	m.students[id] = updated
	return nil
}

func (m *Memory) DeleteStudentByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
	}

	delete(m.students, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// clone copies the course slice so callers cannot mutate stored state.
func clone(s types.Student) types.Student {
	s.Courses = slices.Clone(s.Courses)
	return s
}
