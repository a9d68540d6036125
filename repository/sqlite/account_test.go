package sqlite

import (
	"context"
	"testing"
	"time"

	"tubescribe/errors"
	"tubescribe/models"
)

func newTestRepo(t *testing.T) *accountRepository {
	t.Helper()

	db, err := InitDB(":memory:", 1)
	if err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &accountRepository{db: db}
}

func testAccount() *models.Account {
	now := time.Now().UTC()
	return &models.Account{
		ID:          "uid-123",
		Email:       "user@example.com",
		DisplayName: "Test User",
		PhotoURL:    "https://example.com/p.png",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testAccount()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "uid-123")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "user@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
	if got.DisplayName != "Test User" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
}

func TestGetByEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testAccount()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != "uid-123" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestGetMissingAccount(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "no-such-id")
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testAccount()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, testAccount()); err == nil {
		t.Error("expected error for duplicate primary key")
	}
}
