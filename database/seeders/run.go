// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("admin", SeedAdmin)
//	}
//
// Then run via CLI: backoffice seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/pkg/logger"
)

// SeederFunc is the signature for a seed function. Seeders must be
// idempotent: they run on every `seed` and at server boot.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and
// returns the names that ran. It stops on the first error.
func RunAll(ctx context.Context, db *gorm.DB) ([]string, error) {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	var ran []string
	for _, e := range current {
		logger.Info("seeder: running", "name", e.name)
		if err := e.fn(ctx, db); err != nil {
			return ran, fmt.Errorf("seeder %q: %w", e.name, err)
		}
		ran = append(ran, e.name)
	}
	return ran, nil
}
