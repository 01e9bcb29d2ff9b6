package database

import (
	"database/sql"
	"strings"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/pkg/orm"
)

const sqliteDriverName = "sqlite3_backoffice"

var registerSQLite sync.Once

// sqliteDialector opens SQLite through a driver whose connections carry
// orm.FoldFunc. SQLite's LOWER only folds ASCII.
func sqliteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc(orm.FoldFunc, foldText, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}

// foldText receives NULL as a nil []byte.
func foldText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.ToLower(t)
	case []byte:
		return strings.ToLower(string(t))
	default:
		return ""
	}
}
