package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/projectpad/internal/domain"
)

// NoteRepository implements domain.NoteRepository using SQLite.
type NoteRepository struct {
	db *sql.DB
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (project_id, user_id, message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ProjectID, note.UserID, note.Message, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	note := &domain.Note{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, user_id, message, created_at, updated_at
		 FROM notes WHERE id = ?`, id,
	).Scan(&note.ID, &note.ProjectID, &note.UserID, &note.Message,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query note by id: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Note, error) {
	return r.query(ctx,
		`SELECT id, project_id, user_id, message, created_at, updated_at
		 FROM notes WHERE project_id = ? ORDER BY id`, projectID)
}

// Search matches term as a case-insensitive substring of the message.
// SQLite's LIKE is case-insensitive for ASCII, which covers the substring
// semantics needed here; creation order keeps results deterministic.
func (r *NoteRepository) Search(ctx context.Context, projectID int64, term string) ([]domain.Note, error) {
	if term == "" {
		return nil, nil
	}

	pattern := "%" + escapeLike(term) + "%"
	return r.query(ctx,
		`SELECT id, project_id, user_id, message, created_at, updated_at
		 FROM notes WHERE project_id = ? AND message LIKE ? ESCAPE '\' ORDER BY id`,
		projectID, pattern)
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
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

func (r *NoteRepository) query(ctx context.Context, q string, args ...any) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.UserID, &n.Message,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
