// Package migration runs versioned schema migrations and records which
// ones have been applied, grouped in batches so the last run can be
// rolled back.
//
//	func init() {
//	    migration.Register("20260101000000_create_categories_table", &CreateCategoriesTable{})
//	}
package migration

import (
	"fmt"
	"sort"
	"time"

	"github.com/sheshine/backoffice/pkg/logger"
	"gorm.io/gorm"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration. name must be timestamp-prefixed; pending
// migrations run in name order.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Status is one row of Runner.Status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
	RunAt time.Time
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load history: %w", err)
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

func sorted() []registeredMigration {
	out := append([]registeredMigration(nil), registry...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Run applies every pending migration as one batch. Each migration and its
// history row are committed together. It returns the names applied.
func (r *Runner) Run() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	batch := r.lastBatch() + 1
	var applied []string

	for _, reg := range sorted() {
		if _, ok := done[reg.name]; ok {
			continue
		}

		logger.Info("migration: running", "name", reg.name, "batch", batch)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		applied = append(applied, reg.name)
	}

	return applied, nil
}

// Rollback reverses the most recent batch, newest first. It returns the
// names rolled back.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	last := r.lastBatch()
	if last == 0 {
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", last).Order("name desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load batch %d: %w", last, err)
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	var reverted []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return reverted, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&migrationRecord{}, rec.ID).Error
		})
		if err != nil {
			return reverted, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		reverted = append(reverted, rec.Name)
	}
	return reverted, nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, reg := range sorted() {
		s := Status{Name: reg.name}
		if rec, ok := done[reg.name]; ok {
			s.Ran, s.Batch, s.RunAt = true, rec.Batch, rec.RunAt
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&max)
	return max.Max
}
