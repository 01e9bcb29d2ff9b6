package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/pkg/database"
	"github.com/sheshine/backoffice/pkg/errs"
)

type widget struct {
	ID    uint
	Email string `gorm:"uniqueIndex"`
}

func TestOpenSQLite(t *testing.T) {
	db, err := database.Open("sqlite", "file:db_open_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	db, err := database.Open("sqlite", "file:db_unique_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, db.AutoMigrate(&widget{}))

	require.NoError(t, db.Create(&widget{Email: "a@example.com"}).Error)
	err = db.Create(&widget{Email: "a@example.com"}).Error
	require.Error(t, err)
	assert.True(t, errs.IsDuplicateKey(err), err.Error())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestPingWithoutConnection(t *testing.T) {
	assert.Error(t, database.Ping(context.Background(), nil))
}
