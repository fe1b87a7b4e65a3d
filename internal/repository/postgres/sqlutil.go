package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	apperrors "github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// where accumulates AND-ed conditions with numbered placeholders, which
// both lib/pq and modernc sqlite accept.
type where struct {
	clauses []string
	args    []interface{}
}

// add appends a clause; each ? in clause is replaced by the next $N.
func (w *where) add(clause string, args ...interface{}) {
	for _, a := range args {
		w.args = append(w.args, a)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
}

// in appends "column IN (...)" for a non-empty value list.
func (w *where) in(column string, values []string) {
	if len(values) == 0 {
		return
	}
	marks := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	w.add(column+" IN ("+strings.Join(marks, ", ")+")", args...)
}

// arg registers a trailing argument such as a LIMIT value and returns its placeholder.
func (w *where) arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func newID() string {
	return uuid.NewString()
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func stringOrNil(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringFromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func fromUnix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

// isUniqueViolation recognises duplicate-key errors from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// expectAffected turns a zero-row write into a NotFound for resource.
func expectAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}
