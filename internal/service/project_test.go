package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/projectpad/internal/domain"
	"github.com/msomdec/projectpad/internal/repository/sqlite"
	"github.com/msomdec/projectpad/internal/service"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, FirstName: "Test", LastName: "User", PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	return ve.Fields
}

func containsMessage(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func TestProjectCreate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	project, err := svc.Create(ctx, owner, service.ProjectAttrs{
		Name:        "Test Project",
		Description: "Sample project for testing purposes",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.ID == 0 {
		t.Fatal("expected project ID to be set")
	}
	if project.OwnerID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, project.OwnerID)
	}

	// Only the creator's list grows.
	ownerList, err := svc.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner(owner): %v", err)
	}
	if len(ownerList) != 1 {
		t.Fatalf("expected 1 project for owner, got %d", len(ownerList))
	}

	otherList, err := svc.ListForOwner(ctx, other)
	if err != nil {
		t.Fatalf("ListForOwner(other): %v", err)
	}
	if len(otherList) != 0 {
		t.Fatalf("expected 0 projects for other user, got %d", len(otherList))
	}
}

func TestProjectCreateBlankName(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: name})
		fields := fieldErrors(t, err)
		if !containsMessage(fields["name"], "can't be blank") {
			t.Fatalf("name %q: expected blank-name error, got %v", name, fields)
		}
	}

	// Nothing was persisted.
	list, err := svc.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no projects persisted, got %d", len(list))
	}
}

func TestProjectCreateAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())

	_, err := svc.Create(context.Background(), nil, service.ProjectAttrs{Name: "Test Project"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProjectNameUniquePerOwner(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	if _, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same owner, same name: rejected.
	_, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	fields := fieldErrors(t, err)
	if !containsMessage(fields["name"], "has already been taken") {
		t.Fatalf("expected duplicate-name error, got %v", fields)
	}

	// Different owner, same name: allowed.
	if _, err := svc.Create(ctx, other, service.ProjectAttrs{Name: "Test Project"}); err != nil {
		t.Fatalf("create for other owner: %v", err)
	}
}

func TestProjectGet(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	created, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if got.Name != "Test Project" {
		t.Fatalf("expected name %q, got %q", "Test Project", got.Name)
	}

	if _, err := svc.Get(ctx, other, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Get as other user: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, nil, created.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Get as anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Get(ctx, owner, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
	}
}

func TestProjectUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	created, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, owner, created.ID, service.ProjectAttrs{
		Name:        "Renamed Project",
		Description: "Now with a description",
	})
	if err != nil {
		t.Fatalf("Update as owner: %v", err)
	}
	if updated.Name != "Renamed Project" {
		t.Fatalf("expected renamed project, got %q", updated.Name)
	}

	// A non-owner's update is rejected and leaves the project untouched.
	_, err = svc.Update(ctx, other, created.ID, service.ProjectAttrs{Name: "Hijacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update as other user: expected ErrForbidden, got %v", err)
	}

	got, err := svc.Get(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("Get after forbidden update: %v", err)
	}
	if got.Name != "Renamed Project" {
		t.Fatalf("expected name unchanged after forbidden update, got %q", got.Name)
	}
}

func TestProjectUpdateKeepsOwnName(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")

	created, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Re-saving under the same name is not a collision with itself.
	if _, err := svc.Update(ctx, owner, created.ID, service.ProjectAttrs{
		Name:        "Test Project",
		Description: "Updated description",
	}); err != nil {
		t.Fatalf("Update with own name: %v", err)
	}
}

func TestProjectUpdateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")

	if _, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "First Project"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Second Project"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err = svc.Update(ctx, owner, second.ID, service.ProjectAttrs{Name: "First Project"})
	fields := fieldErrors(t, err)
	if !containsMessage(fields["name"], "has already been taken") {
		t.Fatalf("expected duplicate-name error, got %v", fields)
	}
}

func TestProjectDelete(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewProjectService(db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	created, err := svc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, other, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Delete as other user: expected ErrForbidden, got %v", err)
	}

	list, err := svc.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected project to survive forbidden delete, got %d projects", len(list))
	}

	if err := svc.Delete(ctx, owner, created.ID); err != nil {
		t.Fatalf("Delete as owner: %v", err)
	}

	list, err = svc.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected 0 projects after delete, got %d", len(list))
	}
}

func TestProjectDeleteCascadesNotes(t *testing.T) {
	db := newTestDB(t)
	projectSvc := service.NewProjectService(db.Projects())
	noteSvc := service.NewNoteService(db.Notes(), db.Projects())
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")

	project, err := projectSvc.Create(ctx, owner, service.ProjectAttrs{Name: "Test Project"})
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}
	note, err := noteSvc.Create(ctx, owner, project.ID, "This note goes down with the project.")
	if err != nil {
		t.Fatalf("Create note: %v", err)
	}

	if err := projectSvc.Delete(ctx, owner, project.ID); err != nil {
		t.Fatalf("Delete project: %v", err)
	}

	if _, err := db.Notes().GetByID(ctx, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected note cascade-deleted, got %v", err)
	}
}

func TestLate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dueOn time.Time
		want  bool
	}{
		{"due yesterday", now.AddDate(0, 0, -1), true},
		{"due last week", now.AddDate(0, 0, -7), true},
		{"due today", now, false},
		{"due later today", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"due tomorrow", now.AddDate(0, 0, 1), false},
		{"no due date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Project{Name: "Test Project", DueOn: tt.dueOn}
			if got := service.Late(p, now); got != tt.want {
				t.Fatalf("Late() = %v, want %v", got, tt.want)
			}
		})
	}
}
