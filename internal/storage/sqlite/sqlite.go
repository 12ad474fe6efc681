// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk: no network, no
// separate server process. Importing go-sqlite3 registers the "sqlite3"
// driver with database/sql through the driver's init() function.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/mattn/go-sqlite3"
)

// SQLite is the production implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open is New without the config indirection; tests pass a temp file path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// seq keeps insertion order stable for GetStudents; id is the public
	// identifier handed out by the service layer.
	//
	// courses holds a JSON array, or the JSON literal null when the
	// student has no course list at all.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT    NOT NULL UNIQUE,
			name         TEXT    NOT NULL,
			age          INTEGER NOT NULL,
			gender       TEXT    NOT NULL DEFAULT '',
			is_graduated BOOLEAN NOT NULL DEFAULT 0,
			courses      TEXT    NOT NULL DEFAULT 'null'
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row. Placeholders (?) keep user input out of
// the SQL text; the driver sends query and values separately.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	courses, err := encodeCourses(student.Courses)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (id, name, age, gender, is_graduated, courses) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		student.ID, student.Name, student.Age, student.Gender, student.IsGraduated, courses,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, fmt.Errorf("duplicate id %s: %w", student.ID, storage.ErrConflict)
		}
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return s.GetStudentByID(ctx, student.ID)
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByID fetches exactly one row matched by id.
// sql.ErrNoRows is translated into storage.ErrNotFound so callers never
// depend on database/sql directly.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, age, gender, is_graduated, courses FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all rows in insertion order.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, age, gender, is_graduated, courses FROM students ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the JSON encoding is [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces every column except id and seq.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id string, student types.Student) error {
	courses, err := encodeCourses(student.Courses)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE students SET name = ?, age = ?, gender = ?, is_graduated = ?, courses = ? WHERE id = ?",
	)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	// Argument order matches the ? order in the SQL.
	result, err := stmt.ExecContext(ctx,
		student.Name, student.Age, student.Gender, student.IsGraduated, courses, id,
	)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	return checkAffected("UpdateStudentByID", id, result)
}

// DeleteStudentByID removes a row by id.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id string) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	return checkAffected("DeleteStudentByID", id, result)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanStudent reads one row. Column order must match the SELECT lists above.
func scanStudent(row rowScanner) (types.Student, error) {
	var (
		student types.Student
		courses string
	)

	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Gender,
		&student.IsGraduated,
		&courses,
	); err != nil {
		return types.Student{}, err
	}

	if err := json.Unmarshal([]byte(courses), &student.Courses); err != nil {
		return types.Student{}, fmt.Errorf("decode courses: %w", err)
	}

	return student, nil
}

// encodeCourses keeps the nil/empty distinction: nil becomes null, an
// empty slice becomes [].
func encodeCourses(courses []string) (string, error) {
	b, err := json.Marshal(courses)
	if err != nil {
		return "", fmt.Errorf("encode courses: %w", err)
	}
	return string(b), nil
}

// isUniqueViolation reports whether err is SQLite rejecting a second row
// with the same id.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func checkAffected(op, id string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
