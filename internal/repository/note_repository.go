// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Note model and repository methods for CRUD and lookup
// operations. A Note always belongs to exactly one user; every read or write
// that acts on behalf of a user filters on id AND user_id in a single
// predicate, so a note owned by somebody else is indistinguishable from a
// note that does not exist.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Note represents a note entity persisted in the database. Titles are
// unique across the whole table (not per owner).
type Note struct {
	ID        string    // notes.id
	Title     string    // notes.title
	Content   string    // notes.content
	UserID    string    // notes.user_id, references users.id
	CreatedAt time.Time // notes.created_at
	UpdatedAt time.Time // notes.updated_at
}

// NoteRepo encapsulates all database queries related to notes. It depends
// on a sql.DB connection which should be configured elsewhere.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo constructs a NoteRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create inserts a new note owned by userID. On success a follow-up SELECT
// populates the timestamp fields so that callers receive a fully populated
// record. A duplicate title (any owner) is reported as ErrTitleExists.
func (r *NoteRepo) Create(ctx context.Context, title, content, userID string) (*Note, error) {
	id := uuid.NewString()
	const qInsert = "INSERT INTO notes (id, title, content, user_id) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, qInsert, id, title, content, userID); err != nil {
		if isDuplicate(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	const qSelect = "SELECT id, title, content, user_id, created_at, updated_at FROM notes WHERE id = ?"
	var n Note
	if err := r.db.QueryRowContext(ctx, qSelect, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListAll returns every note in the table ordered by creation time.
// No owner filter: the listing endpoint is public.
func (r *NoteRepo) ListAll(ctx context.Context) ([]*Note, error) {
	const q = `SELECT id, title, content, user_id, created_at, updated_at
	           FROM notes ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Note
	for rows.Next() {
		n := new(Note)
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDAndOwner fetches a note by id but only if it belongs to the
// specified user. If the note doesn't exist or is owned by someone else,
// ErrNoteNotFound is returned.
func (r *NoteRepo) GetByIDAndOwner(ctx context.Context, id, userID string) (*Note, error) {
	const q = "SELECT id, title, content, user_id, created_at, updated_at FROM notes WHERE id = ? AND user_id = ?"
	var n Note
	if err := r.db.QueryRowContext(ctx, q, id, userID).
		Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

// UpdateByIDAndOwner applies a partial update: nil fields keep their prior
// values via COALESCE. The UPDATE itself carries the combined id+owner
// predicate, and the follow-up owner-scoped SELECT both returns the fresh
// row and distinguishes "nothing to change" from "not found / not owned"
// (MySQL reports zero affected rows for identical values, so RowsAffected
// cannot make that call).
func (r *NoteRepo) UpdateByIDAndOwner(ctx context.Context, id, userID string, title, content *string) (*Note, error) {
	const qUpdate = `UPDATE notes SET title = COALESCE(?, title), content = COALESCE(?, content)
	                 WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, qUpdate, title, content, id, userID); err != nil {
		if isDuplicate(err) {
			return nil, ErrTitleExists
		}
		return nil, err
	}
	return r.GetByIDAndOwner(ctx, id, userID)
}

// DeleteByIDAndOwner removes a note if it belongs to the given user and
// returns the deleted record. ErrNoteNotFound covers both a missing note
// and one owned by another user.
func (r *NoteRepo) DeleteByIDAndOwner(ctx context.Context, id, userID string) (*Note, error) {
	n, err := r.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	const q = "DELETE FROM notes WHERE id = ? AND user_id = ?"
	if _, err := r.db.ExecContext(ctx, q, id, userID); err != nil {
		return nil, err
	}
	return n, nil
}
