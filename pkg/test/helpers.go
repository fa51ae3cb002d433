package test

import (
	"context"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite"
)

// InitTestDB opens a private in-memory sqlite database with all migrations
// applied. Each call gets its own database.
func InitTestDB() *sqlite.DB {
	dsn := "file:todos-" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := sqlite.NewDB(context.Background(), dsn, zerolog.Nop())

	if err != nil {
		log.Fatal(err)
	}

	return db
}

// CountTodos returns the number of rows in the todo table.
func CountTodos(t *testing.T, db *sqlite.DB) int {
	t.Helper()

	var count int

	if err := db.QueryRow("SELECT COUNT(*) FROM todo").Scan(&count); err != nil {
		t.Fatalf("Failed to count todos: %v", err)
	}

	return count
}
