package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/kcnotes/kcnotes/internal/utils"
)

// mockTime is a fixed timestamp for rows returned by sqlmock.
func mockTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newUserRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepo(db), mock, db
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^INSERT INTO users \(id, username, password\) VALUES \(\?,\?,\?\)$`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(context.Background(), "alice", "pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id == "" {
		t.Fatalf("empty id returned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreate_Duplicate(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^INSERT INTO users \(id, username, password\) VALUES \(\?,\?,\?\)$`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'uq_users_username'"))

	_, err := repo.Create(context.Background(), "alice", "pw1", bcrypt.MinCost)
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("want ErrUsernameExists, got %v", err)
	}
}

func TestUserCreate_DBError(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^INSERT INTO users`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "alice", "pw1", bcrypt.MinCost)
	if err == nil || errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected raw db error, got %v", err)
	}
}

func TestUserGetByUsername_Found(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	hash, err := utils.HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	q := `^SELECT id,username,password,created_at,updated_at FROM users WHERE username=\? LIMIT 1$`

	rows := sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"}).
		AddRow("u-1", "alice", hash, mockTime(), mockTime())
	mock.ExpectQuery(q).WithArgs("alice").WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if u.ID != "u-1" || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if !utils.VerifyPassword(u.PasswordHash, "pw1") {
		t.Fatalf("stored hash does not verify")
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^SELECT id,username,password,created_at,updated_at FROM users WHERE username=\? LIMIT 1$`

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^UPDATE users SET password=\? WHERE id=\?$`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "u-1", "newpw", bcrypt.MinCost); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestUserUpdatePassword_MissingUser(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `^UPDATE users SET password=\? WHERE id=\?$`

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "gone", "newpw", bcrypt.MinCost)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestUserDeleteWithNotes_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE FROM notes WHERE user_id=\?$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`^DELETE FROM users WHERE id=\?$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteWithNotes(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteWithNotes error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserDeleteWithNotes_MissingUser(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE FROM notes WHERE user_id=\?$`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE FROM users WHERE id=\?$`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithNotes(context.Background(), "gone")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
