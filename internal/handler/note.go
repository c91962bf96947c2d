// Package handler defines HTTP handlers for note CRUD. Every operation that
// acts on behalf of a user goes through a repository method that filters on
// id AND owner in one predicate, so a foreign note and a missing note are
// the same 404 to the caller. The listing endpoint is deliberately public
// and unscoped.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kcnotes/kcnotes/internal/queue"
	"github.com/kcnotes/kcnotes/internal/repository"
	queue_publisher "github.com/kcnotes/kcnotes/internal/service"
)

// NoteHandler bundles dependencies for note endpoints.
type NoteHandler struct {
	Notes *repository.NoteRepo
}

func NewNoteHandler(n *repository.NoteRepo) *NoteHandler {
	if n == nil {
		panic("nil repository passed to NewNoteHandler")
	}
	return &NoteHandler{Notes: n}
}

// ----- DTOs -----

type createNoteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateNoteReq uses pointers so PATCH can tell "field absent" from
// "field set to empty".
type updateNoteReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type noteResp struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResp(n *repository.Note) noteResp {
	return noteResp{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// Create handles POST /notes. The note is owned by the authenticated user;
// a title collision with any existing note (regardless of owner) is a 400.
func (h *NoteHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.Create(ctx, req.Title, req.Content, uid)
	if err != nil {
		if errors.Is(err, repository.ErrTitleExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create note failed"})
	}

	ev := queue.NoteActivityEvent{
		Action:     queue.ActionNoteCreated,
		UserID:     uid,
		NoteID:     n.ID,
		Title:      n.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishNoteActivity(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, toNoteResp(n))
}

// List handles GET /notes. No authentication and no owner filter: this is
// the public listing of every note in the system.
func (h *NoteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Notes.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notes failed"})
	}
	out := make([]noteResp, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /notes/:id for the authenticated owner.
func (h *NoteHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toNoteResp(n))
}

// Update handles PATCH /notes/:id. Only supplied fields are applied;
// absent fields keep their prior values.
func (h *NoteHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	var req updateNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && *req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.UpdateByIDAndOwner(ctx, id, uid, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoteNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		case errors.Is(err, repository.ErrTitleExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, toNoteResp(n))
}

// Delete handles DELETE /notes/:id and returns the removed note.
func (h *NoteHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notes.DeleteByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	ev := queue.NoteActivityEvent{
		Action:     queue.ActionNoteDeleted,
		UserID:     uid,
		NoteID:     n.ID,
		Title:      n.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishNoteActivity(context.Background(), ev) }()

	return c.JSON(http.StatusOK, toNoteResp(n))
}
