package service

import "github.com/msomdec/projectpad/internal/domain"

// Action is the kind of access being requested on a project.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyAnonymous
	DenyForbidden
)

// Authorize decides whether actor may perform action on project. The rule is
// uniform for reads and writes: only the project's owner gets in. A nil
// actor is an anonymous caller. Pure function, no side effects.
func Authorize(actor *domain.User, project *domain.Project, action Action) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	if actor.ID != project.OwnerID {
		return DenyForbidden
	}
	return Allow
}

// Err maps a deny decision onto the domain error taxonomy. Allow maps to nil.
func (d Decision) Err() error {
	switch d {
	case DenyAnonymous:
		return domain.ErrUnauthenticated
	case DenyForbidden:
		return domain.ErrForbidden
	default:
		return nil
	}
}
