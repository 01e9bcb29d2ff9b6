package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/pkg/database"
	"github.com/sheshine/backoffice/pkg/migration"
)

type swatch struct {
	ID   uint
	Name string
}

type createSwatches struct{}

func (createSwatches) Up(db *gorm.DB) error   { return db.AutoMigrate(&swatch{}) }
func (createSwatches) Down(db *gorm.DB) error { return db.Migrator().DropTable(&swatch{}) }

func init() {
	migration.Register("20990101000000_create_swatches_table", createSwatches{})
}

func open(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRunStatusRollback(t *testing.T) {
	db := open(t, "migration_cycle")
	r := migration.New(db)

	applied, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"20990101000000_create_swatches_table"}, applied)
	assert.True(t, db.Migrator().HasTable(&swatch{}))

	again, err := r.Run()
	require.NoError(t, err)
	assert.Empty(t, again)

	status, err := r.Status()
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.True(t, status[0].Ran)
	assert.Equal(t, 1, status[0].Batch)

	reverted, err := r.Rollback()
	require.NoError(t, err)
	assert.Equal(t, applied, reverted)
	assert.False(t, db.Migrator().HasTable(&swatch{}))

	status, err = r.Status()
	require.NoError(t, err)
	assert.False(t, status[0].Ran)
}

func TestRollbackWithNothingToDo(t *testing.T) {
	reverted, err := migration.New(open(t, "migration_empty")).Rollback()
	require.NoError(t, err)
	assert.Empty(t, reverted)
}
