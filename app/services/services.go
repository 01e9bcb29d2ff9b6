// Package services holds the business rules of the back office. Services
// take their *gorm.DB at construction, run multi-step writes in one
// transaction and return errs kinds the HTTP layer maps to status codes.
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/validate"
)

const dateLayout = "2006-01-02"

// notFound turns a missing row into a NotFound carrying msg.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(msg)
	}
	return err
}

// check runs the struct rules on in and merges extra field errors.
func check(in interface{}, extra map[string]string) error {
	fields := validate.Struct(in)
	for k, v := range extra {
		if fields == nil {
			fields = map[string]string{}
		}
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if validate.HasErrors(fields) {
		return errs.Validation("Validation failed", fields)
	}
	return nil
}

func invalidField(field, msg string) error {
	return errs.Validation("Validation failed", map[string]string{field: msg})
}

func negative(d decimal.Decimal) bool { return d.IsNegative() }

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
