package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/projectpad/internal/domain"
)

// NoteService handles notes attached to projects. Access to a note follows
// access to its parent project, checked through the same Authorize guard as
// project operations.
type NoteService struct {
	notes    domain.NoteRepository
	projects domain.ProjectRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes domain.NoteRepository, projects domain.ProjectRepository) *NoteService {
	return &NoteService{notes: notes, projects: projects}
}

// Create attaches a note authored by the actor to the project.
func (s *NoteService) Create(ctx context.Context, actor *domain.User, projectID int64, message string) (*domain.Note, error) {
	project, err := s.authorizedProject(ctx, actor, projectID, ActionWrite)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(message) == "" {
		ve := domain.NewValidationError()
		ve.Add("message", "can't be blank")
		return nil, ve
	}

	note := &domain.Note{
		ProjectID: project.ID,
		UserID:    actor.ID,
		Message:   message,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// ListForProject returns the project's notes in creation order.
func (s *NoteService) ListForProject(ctx context.Context, actor *domain.User, projectID int64) ([]domain.Note, error) {
	if _, err := s.authorizedProject(ctx, actor, projectID, ActionRead); err != nil {
		return nil, err
	}
	return s.notes.ListByProject(ctx, projectID)
}

// Search returns the project's notes whose message contains term as a
// case-insensitive substring, in creation order. An empty term yields an
// empty result. Plain substring match only; no tokenization or fuzziness.
func (s *NoteService) Search(ctx context.Context, actor *domain.User, projectID int64, term string) ([]domain.Note, error) {
	if _, err := s.authorizedProject(ctx, actor, projectID, ActionRead); err != nil {
		return nil, err
	}
	return s.notes.Search(ctx, projectID, term)
}

// Delete removes a note after checking write access on its parent project.
func (s *NoteService) Delete(ctx context.Context, actor *domain.User, noteID int64) error {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	if _, err := s.authorizedProject(ctx, actor, note.ProjectID, ActionWrite); err != nil {
		return err
	}
	return s.notes.Delete(ctx, noteID)
}

func (s *NoteService) authorizedProject(ctx context.Context, actor *domain.User, projectID int64, action Action) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if d := Authorize(actor, project, action); d != Allow {
		return nil, d.Err()
	}
	return project, nil
}
