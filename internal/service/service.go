// Package service implements the Student Service: persistence-backed CRUD
// operations consumed by the HTTP controller through the Service interface.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/google/uuid"
)

// Service is the capability the controller depends on.
//
// GetStudent reports an absent student as (nil, nil); any non-nil error is
// a real failure. UpdateStudent and DeleteStudent assume the caller has
// already checked that the student exists.
type Service interface {
	GetStudent(ctx context.Context, id string) (*types.Student, error)
	GetAllStudents(ctx context.Context) ([]types.Student, error)
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)
	UpdateStudent(ctx context.Context, id string, student types.Student) error
	DeleteStudent(ctx context.Context, id string) error
}

// StudentService is the production Service backed by a storage.Storage.
type StudentService struct {
	store storage.Storage
	newID func() string
}

var _ Service = (*StudentService)(nil)

// New returns a StudentService that generates UUIDv4 identifiers.
func New(store storage.Storage) *StudentService {
	return &StudentService{
		store: store,
		newID: func() string { return uuid.New().String() },
	}
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (*types.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) GetAllStudents(ctx context.Context) ([]types.Student, error) {
	return s.store.GetStudents(ctx)
}

// CreateStudent keeps a client-supplied id and generates one otherwise.
func (s *StudentService) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	if student.ID == "" {
		student.ID = s.newID()
	}

	created, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		return types.Student{}, fmt.Errorf("create student %s: %w", student.ID, err)
	}

	slog.Debug("student stored", slog.String("id", created.ID))
	return created, nil
}

// UpdateStudent overwrites every field but the id.
func (s *StudentService) UpdateStudent(ctx context.Context, id string, student types.Student) error {
	student.ID = id
	return s.store.UpdateStudentByID(ctx, id, student)
}

func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	return s.store.DeleteStudentByID(ctx, id)
}
