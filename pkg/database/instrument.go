package database

import (
	"errors"
	"time"

	"github.com/sheshine/backoffice/pkg/metrics"
	"gorm.io/gorm"
)

const startKey = "metrics:start"

// instrument times every statement into metrics.DBQueryDuration.
func instrument(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startKey, time.Now())
	}
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			if v, ok := tx.InstanceGet(startKey); ok {
				if start, ok := v.(time.Time); ok {
					metrics.ObserveDBQuery(op, start)
				}
			}
		}
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", before),
		cb.Create().After("gorm:create").Register("metrics:after_create", after("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", before),
		cb.Query().After("gorm:query").Register("metrics:after_query", after("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", before),
		cb.Update().After("gorm:update").Register("metrics:after_update", after("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")),
		cb.Row().Before("gorm:row").Register("metrics:before_row", before),
		cb.Row().After("gorm:row").Register("metrics:after_row", after("row")),
	)
}
