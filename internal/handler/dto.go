package handler

import (
	"time"

	"github.com/msomdec/projectpad/internal/domain"
	"github.com/msomdec/projectpad/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ProjectDTO is the JSON representation of a project. Late is derived from
// the due date at render time, never stored.
type ProjectDTO struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueOn       string `json:"dueOn"`
	Late        bool   `json:"late"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toProjectDTO(p *domain.Project, now time.Time) ProjectDTO {
	dueOn := ""
	if !p.DueOn.IsZero() {
		dueOn = p.DueOn.Format(time.DateOnly)
	}
	return ProjectDTO{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		DueOn:       dueOn,
		Late:        service.Late(p, now),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProjectDTOs(projects []domain.Project, now time.Time) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i], now)
	}
	return dtos
}

// NoteDTO is the JSON representation of a note.
type NoteDTO struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	UserID    int64  `json:"userId"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

func toNoteDTO(n *domain.Note) NoteDTO {
	return NoteDTO{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		UserID:    n.UserID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func toNoteDTOs(notes []domain.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i := range notes {
		dtos[i] = toNoteDTO(&notes[i])
	}
	return dtos
}
