package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/projectpad/internal/domain"
	"github.com/msomdec/projectpad/internal/repository/sqlite"
)

func seedNote(t *testing.T, db *sqlite.DB, projectID, userID int64, message string) *domain.Note {
	t.Helper()
	n := &domain.Note{ProjectID: projectID, UserID: userID, Message: message}
	if err := db.Notes().Create(context.Background(), n); err != nil {
		t.Fatalf("seed note %q: %v", message, err)
	}
	return n
}

func TestNoteRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	p := seedProject(t, db, owner.ID, "Test Project")

	messages := []string{"First note.", "Second note.", "Third note."}
	for _, m := range messages {
		seedNote(t, db, p.ID, owner.ID, m)
	}

	notes, err := db.Notes().ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(notes) != len(messages) {
		t.Fatalf("expected %d notes, got %d", len(messages), len(notes))
	}
	for i, m := range messages {
		if notes[i].Message != m {
			t.Fatalf("position %d: expected %q, got %q", i, m, notes[i].Message)
		}
	}
}

func TestNoteRepository_SearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	p := seedProject(t, db, owner.ID, "Test Project")

	seedNote(t, db, p.ID, owner.ID, "This is the first note.")
	seedNote(t, db, p.ID, owner.ID, "This is the second note.")
	seedNote(t, db, p.ID, owner.ID, "First, preheat the oven.")

	notes, err := db.Notes().Search(ctx, p.ID, "FIRST")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(notes))
	}

	notes, err = db.Notes().Search(ctx, p.ID, "")
	if err != nil {
		t.Fatalf("Search empty term: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected empty result for empty term, got %d", len(notes))
	}
}

func TestNoteRepository_SearchEscapesMetacharacters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	p := seedProject(t, db, owner.ID, "Test Project")

	seedNote(t, db, p.ID, owner.ID, "Progress is at 100% now.")
	seedNote(t, db, p.ID, owner.ID, "Progress is at 1000 units.")
	seedNote(t, db, p.ID, owner.ID, "Rename snake_case fields.")
	seedNote(t, db, p.ID, owner.ID, "The snakeycase variant stays.")

	// A literal % must not act as a wildcard.
	notes, err := db.Notes().Search(ctx, p.ID, "100%")
	if err != nil {
		t.Fatalf("Search %%: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "Progress is at 100% now." {
		t.Fatalf("expected the literal-percent note, got %v", notes)
	}

	// A literal _ must not match any single character.
	notes, err = db.Notes().Search(ctx, p.ID, "snake_case")
	if err != nil {
		t.Fatalf("Search _: %v", err)
	}
	if len(notes) != 1 || notes[0].Message != "Rename snake_case fields." {
		t.Fatalf("expected the underscore note, got %v", notes)
	}
}

func TestNoteRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	p := seedProject(t, db, owner.ID, "Test Project")
	n := seedNote(t, db, p.ID, owner.ID, "Short-lived note.")

	if err := db.Notes().Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Notes().GetByID(ctx, n.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := db.Notes().Delete(ctx, n.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
