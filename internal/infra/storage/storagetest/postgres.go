// Package storagetest поднимает изолированную схему PostgreSQL для интеграционных тестов репозиториев
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/migrate"
	"github.com/m04kA/SMC-SalonBooking/migrations"
)

// Open подключается к TEST_DB_DSN, создает временную схему и применяет миграции
// Без TEST_DB_DSN тест пропускается. Схема удаляется в t.Cleanup
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is required for integration tests")
	}

	ctx := context.Background()
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open admin connection: %v", err)
	}
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	db, err := sql.Open("postgres", withSearchPath(dsn, schema))
	if err != nil {
		t.Fatalf("open schema connection: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		_, _ = admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	if _, err := migrate.Up(ctx, db, migrations.FS, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return db
}

func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "search_path=" + schema
	}
	return dsn + " search_path=" + schema
}
