package memory

import (
	"context"
	"testing"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/storagetest"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return New() })
}

func TestMemory_ReturnedCoursesAreCopies(t *testing.T) {
	m := New()
	ctx := context.Background()

	_, err := m.CreateStudent(ctx, types.Student{ID: "s1", Name: "Alex", Age: 21, Courses: []string{"c1"}})
	require.NoError(t, err)

	got, err := m.GetStudentByID(ctx, "s1")
	require.NoError(t, err)
	got.Courses[0] = "mutated"

	again, err := m.GetStudentByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, again.Courses)
}
