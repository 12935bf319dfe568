package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func TestSignupRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSignupRepository(setupTestDB(t))

	signup := &Signup{
		Email:     "ada@example.com",
		Message:   "hello",
		Status:    SignupDelivered,
		MessageID: "msg_1",
	}
	if err := repo.Create(ctx, signup); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if signup.ID == "" {
		t.Fatal("expected ID to be set")
	}
	if signup.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := repo.Get(ctx, signup.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != "ada@example.com" || got.Message != "hello" || got.MessageID != "msg_1" {
		t.Errorf("unexpected signup: %+v", got)
	}
	if got.Error != "" {
		t.Errorf("expected empty error, got %q", got.Error)
	}
	if !got.CreatedAt.Equal(signup.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, signup.CreatedAt)
	}
}

func TestSignupRepositoryGetNotFound(t *testing.T) {
	repo := NewSignupRepository(setupTestDB(t))
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrSignupNotFound) {
		t.Fatalf("expected ErrSignupNotFound, got %v", err)
	}
}

func TestSignupRepositoryCreateInvalid(t *testing.T) {
	repo := NewSignupRepository(setupTestDB(t))
	for _, signup := range []*Signup{nil, {Status: SignupDelivered}, {Email: "a@b.co"}} {
		if err := repo.Create(context.Background(), signup); !errors.Is(err, ErrInvalidSignup) {
			t.Errorf("Create(%+v) = %v, want ErrInvalidSignup", signup, err)
		}
	}
}

func TestSignupRepositoryListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewSignupRepository(setupTestDB(t))

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []Signup{
		{Email: "a@example.com", Status: SignupDelivered, CreatedAt: base},
		{Email: "b@example.com", Status: SignupFailed, Error: "resend returned 500", CreatedAt: base.Add(time.Hour)},
		{Email: "c@example.com", Status: SignupDelivered, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range fixtures {
		if err := repo.Create(ctx, &fixtures[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.List(ctx, SignupQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Email != "c@example.com" || all[2].Email != "a@example.com" {
		t.Fatalf("expected newest first, got %v", emails(all))
	}

	failed, err := repo.List(ctx, SignupQuery{Status: SignupFailed})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Error != "resend returned 500" {
		t.Fatalf("unexpected failed signups: %v", emails(failed))
	}

	since := base.Add(30 * time.Minute)
	recent, err := repo.List(ctx, SignupQuery{Since: &since, Limit: 1})
	if err != nil {
		t.Fatalf("List since: %v", err)
	}
	if len(recent) != 1 || recent[0].Email != "c@example.com" {
		t.Fatalf("unexpected recent signups: %v", emails(recent))
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[SignupDelivered] != 2 || counts[SignupFailed] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)

	applied, err := database.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no pending migrations, applied %d", applied)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grounds.db")
	database, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if database.Path() != path {
		t.Fatalf("Path() = %q", database.Path())
	}

	if _, err := Open(Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func emails(signups []*Signup) []string {
	out := make([]string, 0, len(signups))
	for _, s := range signups {
		out = append(out, s.Email)
	}
	return out
}
