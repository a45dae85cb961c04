package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/projectpad/internal/domain"
)

// ProjectAttrs carries the caller-settable fields of a project.
type ProjectAttrs struct {
	Name        string
	Description string
	DueOn       time.Time
}

// ProjectService handles project CRUD on behalf of an explicit actor. Every
// operation takes the acting user as a parameter; there is no ambient
// session state at this layer.
type ProjectService struct {
	projects domain.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// ListForOwner returns the actor's projects in insertion order.
func (s *ProjectService) ListForOwner(ctx context.Context, actor *domain.User) ([]domain.Project, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.projects.ListByOwner(ctx, actor.ID)
}

// Get loads a single project, enforcing read access.
func (s *ProjectService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Project, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := Authorize(actor, project, ActionRead); d != Allow {
		return nil, d.Err()
	}
	return project, nil
}

// Create persists a new project owned by the actor. Validation failures are
// returned as a *domain.ValidationError and nothing is persisted.
func (s *ProjectService) Create(ctx context.Context, actor *domain.User, attrs ProjectAttrs) (*domain.Project, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	project := &domain.Project{
		OwnerID:     actor.ID,
		Name:        attrs.Name,
		Description: attrs.Description,
		DueOn:       attrs.DueOn,
	}

	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		// The unique index is the authoritative guard; a concurrent create
		// can slip past the pre-check and land here.
		if errors.Is(err, domain.ErrDuplicateProject) {
			return nil, duplicateNameError()
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Update applies attrs to the project after an ownership check. On any
// failure the stored project is left untouched; on success all changed
// fields are committed together.
func (s *ProjectService) Update(ctx context.Context, actor *domain.User, id int64, attrs ProjectAttrs) (*domain.Project, error) {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := Authorize(actor, existing, ActionWrite); d != Allow {
		return nil, d.Err()
	}

	merged := *existing
	merged.Name = attrs.Name
	merged.Description = attrs.Description
	merged.DueOn = attrs.DueOn

	if err := s.validate(ctx, &merged); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, &merged); err != nil {
		if errors.Is(err, domain.ErrDuplicateProject) {
			return nil, duplicateNameError()
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &merged, nil
}

// Delete removes the project and, through the storage cascade, all of its
// notes, after an ownership check.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if d := Authorize(actor, existing, ActionWrite); d != Allow {
		return d.Err()
	}

	return s.projects.Delete(ctx, id)
}

// Late reports whether the project's due date lies strictly before ref's
// calendar date. Due today or later means on schedule. The result is derived
// on every call and never stored, since "now" moves independently of the
// project.
func Late(project *domain.Project, ref time.Time) bool {
	if project.DueOn.IsZero() {
		return false
	}
	due := dateOf(project.DueOn)
	return due.Before(dateOf(ref))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// validate collects all field violations for a project: a blank name, or a
// name already used by another of the owner's projects. The uniqueness
// pre-check exists for a friendly error message; the database constraint
// remains the last word.
func (s *ProjectService) validate(ctx context.Context, project *domain.Project) error {
	ve := domain.NewValidationError()

	if strings.TrimSpace(project.Name) == "" {
		ve.Add("name", "can't be blank")
	} else {
		taken, err := s.projects.NameTaken(ctx, project.OwnerID, project.Name, project.ID)
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if taken {
			ve.Add("name", "has already been taken")
		}
	}

	if ve.Any() {
		return ve
	}
	return nil
}

func duplicateNameError() *domain.ValidationError {
	ve := domain.NewValidationError()
	ve.Add("name", "has already been taken")
	return ve
}
