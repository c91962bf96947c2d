// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity action names carried in NoteActivityEvent.Action.
const (
    ActionNoteCreated = "note.created"
    ActionNoteDeleted = "note.deleted"
    ActionUserDeleted = "user.deleted"
)

// NoteActivityEvent is published when a note or account changes in a way
// downstream consumers care about. It contains enough information to log
// or trigger analytics without querying the primary database. NoteID and
// Title are empty for account-level actions.
type NoteActivityEvent struct {
    Action     string `json:"action"`
    UserID     string `json:"user_id"`
    NoteID     string `json:"note_id,omitempty"`
    Title      string `json:"title,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
