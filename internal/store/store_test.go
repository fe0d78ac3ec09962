// store_test.go provides shared test database helpers for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"presskit/internal/database"
	"presskit/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "presskit")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "presskit")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// randSlug returns a unique slug-safe fixture name so parallel test runs
// never collide on unique indexes.
func randSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// fixtureUser creates a throwaway user and registers its cleanup. Rows
// owned by the user (pages, posts, media) cascade on delete.
func fixtureUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	users := NewUserStore(db)
	u, err := users.Create(randSlug("test")+"@example.com", "secret", "Test User", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create fixture user: %v", err)
	}
	t.Cleanup(func() { users.Delete(u.ID) })
	return u
}

// fixtureSection creates a throwaway section and registers its cleanup.
// Pages owned by the section cascade on delete.
func fixtureSection(t *testing.T, db *sql.DB) *models.Section {
	t.Helper()

	sections := NewSectionStore(db)
	sec, err := sections.Create(&models.Section{
		Name:        "Test Section",
		Slug:        randSlug("test-section"),
		SectionType: models.SectionCustom,
		IsActive:    true,
		ShowInNav:   true,
	})
	if err != nil {
		t.Fatalf("create fixture section: %v", err)
	}
	t.Cleanup(func() { sections.Delete(sec.ID) })
	return sec
}
