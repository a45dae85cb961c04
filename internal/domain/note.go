package domain

import (
	"context"
	"time"
)

// Note is a free-text message attached to a project. UserID records the
// author. Notes live and die with their project.
type Note struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id int64) (*Note, error)
	ListByProject(ctx context.Context, projectID int64) ([]Note, error)

	// Search returns the project's notes whose message contains term as a
	// case-insensitive substring, in creation order. An empty term matches
	// nothing.
	Search(ctx context.Context, projectID int64, term string) ([]Note, error)

	Delete(ctx context.Context, id int64) error
}
