package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	_ "github.com/sheshine/backoffice/database/migrations"
	"github.com/sheshine/backoffice/pkg/database"
	"github.com/sheshine/backoffice/pkg/migration"
)

var dbSeq atomic.Int64

// DB opens a private in-memory SQLite database with every migration
// applied. It is closed when the test ends.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testkit_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("testkit: open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if _, err := migration.New(db).Run(); err != nil {
		t.Fatalf("testkit: migrate: %v", err)
	}
	return db
}
