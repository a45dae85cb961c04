package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/projectpad/internal/domain"
)

// ProjectRepository implements domain.ProjectRepository using SQLite.
// The (owner_id, name) unique index makes the database the final arbiter of
// per-owner name uniqueness; violations surface as domain.ErrDuplicateProject.
type ProjectRepository struct {
	db *sql.DB
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (owner_id, name, description, due_on, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.OwnerID, project.Name, project.Description, formatDueOn(project.DueOn), now, now,
	)
	if err != nil {
		if isUniqueViolation(err, "projects.owner_id") {
			return domain.ErrDuplicateProject
		}
		return fmt.Errorf("insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p := &domain.Project{}
	var dueOn string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description, due_on, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &dueOn, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query project by id: %w", err)
	}

	p.DueOn, err = parseDueOn(dueOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, description, due_on, created_at, updated_at
		 FROM projects WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var dueOn string
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &dueOn,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if p.DueOn, err = parseDueOn(dueOn); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, due_on = ?, updated_at = ?
		 WHERE id = ?`,
		project.Name, project.Description, formatDueOn(project.DueOn), now, project.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "projects.owner_id") {
			return domain.ErrDuplicateProject
		}
		return fmt.Errorf("update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	project.UpdatedAt = now
	return nil
}

// Delete removes the project. Its notes go with it via the ON DELETE CASCADE
// foreign key, in the same statement.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) NameTaken(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM projects WHERE owner_id = ? AND name = ? AND id != ?
		 )`, ownerID, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project name: %w", err)
	}
	return exists == 1, nil
}

// Due dates are stored as ISO date strings; an empty string means no due
// date is set.
func formatDueOn(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDueOn(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due_on %q: %w", s, err)
	}
	return t, nil
}
