package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"gift-registry-platform/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEventRepository_GetByID_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewEventRepository(db)

	_, err := repo.GetByID(context.Background(), 999999)
	if err != models.ErrEventNotFound {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepository_UpsertAndLookup(t *testing.T) {
	db := testDB(t)
	repo := NewEventRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{ID: "test-user-upsert", Email: "upsert@example.com", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	defer db.Exec("DELETE FROM users WHERE id = $1", user.ID)

	event := &models.Event{
		UserID:      user.ID,
		Slug:        "test-upsert-slug",
		SlugPremium: "test-upsert-slug-vip",
		LayoutTheme: models.ThemeClassic,
		MainTitle:   "Ana & Bruno",
	}

	err := repo.InTx(ctx, func(tx *sql.Tx) error {
		return repo.Upsert(ctx, tx, event)
	})
	if err != nil {
		t.Fatalf("failed to upsert event: %v", err)
	}

	found, err := repo.GetBySlug(ctx, "test-upsert-slug")
	if err != nil {
		t.Fatalf("failed to look up by slug: %v", err)
	}
	if found.ID != event.ID {
		t.Errorf("expected event %d, got %d", event.ID, found.ID)
	}

	premium, err := repo.GetBySlugPremium(ctx, "test-upsert-slug-vip")
	if err != nil {
		t.Fatalf("failed to look up by premium slug: %v", err)
	}
	if premium.ID != event.ID {
		t.Errorf("expected event %d, got %d", event.ID, premium.ID)
	}
}

func TestEventRepository_SlugTaken(t *testing.T) {
	db := testDB(t)
	repo := NewEventRepository(db)

	taken, err := repo.SlugTaken(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taken {
		t.Error("empty slug should never be reported as taken")
	}
}
