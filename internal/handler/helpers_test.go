package handler_test

import (
	"fmt"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// fixedTime is the timestamp used for all rows returned by sqlmock.
func fixedTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

// errDuplicate fabricates a MySQL duplicate-key error (1062) the way the
// driver reports it.
func errDuplicate(entry, key string) error {
	return fmt.Errorf("Error 1062 (23000): Duplicate entry '%s' for key '%s'", entry, key)
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"})
}

func noteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at", "updated_at"})
}
