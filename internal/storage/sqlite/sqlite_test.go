package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/storagetest"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return openTemp(t) })
}

func TestNew_UsesStoragePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.db")

	s, err := New(&config.Config{StoragePath: path})
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, path)
}

func TestSQLite_DataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.db")
	ctx := context.Background()
	want := types.Student{ID: "s1", Name: "Alex", Age: 21, Gender: "Male", Courses: []string{"c1"}}

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CreateStudent(ctx, want)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetStudentByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
