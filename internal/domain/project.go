package domain

import (
	"context"
	"time"
)

// Project is a unit of work owned by exactly one user. Ownership is fixed at
// creation; no two projects of the same owner may share a name, while
// different owners are free to reuse names.
type Project struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	DueOn       time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error

	// NameTaken reports whether another project owned by ownerID already
	// uses name. excludeID skips the project's own row on update; pass 0
	// on create.
	NameTaken(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
}
