// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a fresh backend returned by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	ctx := context.Background()

	alex := types.Student{ID: "s1", Name: "Alex", Age: 21, Gender: "Male"}
	sam := types.Student{ID: "s2", Name: "Sam", Age: 19, Gender: "Female", IsGraduated: true, Courses: []string{"c1", "c2"}}
	kim := types.Student{ID: "s3", Name: "Kim", Age: 33, Courses: []string{}}

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetStudentByID(ctx, "abc")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("create then get round-trips every field", func(t *testing.T) {
		s := newStore(t)

		for _, want := range []types.Student{alex, sam, kim} {
			created, err := s.CreateStudent(ctx, want)
			require.NoError(t, err)
			assert.Equal(t, want, created)

			got, err := s.GetStudentByID(ctx, want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateStudent(ctx, alex)
		require.NoError(t, err)
		_, err = s.CreateStudent(ctx, alex)
		assert.ErrorIs(t, err, storage.ErrConflict)

		got, err := s.GetStudentByID(ctx, alex.ID)
		require.NoError(t, err)
		assert.Equal(t, alex, got)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		s := newStore(t)

		empty, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, st := range []types.Student{sam, alex, kim} {
			_, err := s.CreateStudent(ctx, st)
			require.NoError(t, err)
		}

		all, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []types.Student{sam, alex, kim}, all)
	})

	t.Run("update replaces fields but not id", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateStudent(ctx, alex)
		require.NoError(t, err)

		changed := types.Student{ID: "other", Name: "Alexandra", Age: 22, Gender: "Female", IsGraduated: true, Courses: []string{"c9"}}
		require.NoError(t, s.UpdateStudentByID(ctx, alex.ID, changed))

		got, err := s.GetStudentByID(ctx, alex.ID)
		require.NoError(t, err)
		changed.ID = alex.ID
		assert.Equal(t, changed, got)

		_, err = s.GetStudentByID(ctx, "other")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update missing", func(t *testing.T) {
		s := newStore(t)

		err := s.UpdateStudentByID(ctx, "nope", alex)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)

		for _, st := range []types.Student{alex, sam} {
			_, err := s.CreateStudent(ctx, st)
			require.NoError(t, err)
		}

		require.NoError(t, s.DeleteStudentByID(ctx, alex.ID))

		_, err := s.GetStudentByID(ctx, alex.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		all, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []types.Student{sam}, all)

		assert.ErrorIs(t, s.DeleteStudentByID(ctx, alex.ID), storage.ErrNotFound)
	})
}
