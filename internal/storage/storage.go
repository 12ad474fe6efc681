// Package storage defines the Storage interface, the contract any backend
// must satisfy to hold student records.
//
// The service layer depends only on this interface, so the SQLite adapter
// used in production and the in-memory adapter used for tests and local
// runs are interchangeable. Picking one is a single line in main.go.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-api/internal/types"
)

// ErrNotFound is returned by every lookup-style method when no row matches
// the requested id. Callers check it with errors.Is.
var ErrNotFound = errors.New("student not found")

// ErrConflict is returned by CreateStudent when the id is already taken.
var ErrConflict = errors.New("student already exists")

// Storage is the persistence contract.
type Storage interface {
	// CreateStudent inserts a fully formed student (ID already assigned)
	// and returns the stored record. Returns ErrConflict (possibly wrapped)
	// when the id is already in use.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// GetStudentByID fetches a single student by id.
	// Returns ErrNotFound (possibly wrapped) when nothing matches.
	GetStudentByID(ctx context.Context, id string) (types.Student, error)

	// GetStudents returns every student in insertion order.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces every field except the id.
	// Returns ErrNotFound when the id does not exist.
	UpdateStudentByID(ctx context.Context, id string, student types.Student) error

	// DeleteStudentByID removes a student permanently.
	// Returns ErrNotFound when the id does not exist.
	DeleteStudentByID(ctx context.Context, id string) error

	// Close releases any resources held by the backend.
	Close() error
}
