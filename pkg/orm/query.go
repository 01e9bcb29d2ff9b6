// Package orm holds the query helpers shared by the repositories:
// offset/limit paging and literal, case-insensitive substring matching.
package orm

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 1_000_000
	likeEscape   = "!"
)

// Page is an offset/limit request. Enabled is false when the caller asked
// for everything.
type Page struct {
	Number  int
	Limit   int
	Enabled bool
}

// ParsePage reads page/limit query values. Paging applies only when both
// parse as integers; page < 1 becomes 1 and limit < 1 becomes 10. Page is
// capped at MaxPage and limit at MaxLimit so the offset stays in range.
func ParsePage(page, limit string) Page {
	p, errP := strconv.Atoi(strings.TrimSpace(page))
	l, errL := strconv.Atoi(strings.TrimSpace(limit))
	if errP != nil || errL != nil {
		return Page{Number: 1}
	}
	if p < 1 {
		p = 1
	}
	if p > MaxPage {
		p = MaxPage
	}
	if l < 1 {
		l = defaultLimit
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return Page{Number: p, Limit: l, Enabled: true}
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	if !p.Enabled {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// Scope applies offset/limit when paging is enabled.
func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.Enabled {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Meta describes where a page sits in the full result.
type Meta struct {
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Meta computes page metadata for total rows. An unpaged result is one
// page.
func (p Page) Meta(total int64) Meta {
	if !p.Enabled {
		return Meta{TotalPages: 1, CurrentPage: 1}
	}
	pages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return Meta{
		TotalPages:  pages,
		CurrentPage: p.Number,
		HasNextPage: p.Number < pages,
		HasPrevPage: p.Number > 1,
	}
}

// EscapeLike escapes LIKE wildcards so s matches literally under
// ESCAPE '!'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}

// FoldFunc is the SQL function that lowercases text the way
// strings.ToLower does. pkg/database registers it on SQLite, whose LOWER
// only folds ASCII; the other dialects fold Unicode with LOWER.
const FoldFunc = "unicode_lower"

// ContainsPattern returns the LIKE argument for a case-insensitive literal
// substring match of q.
func ContainsPattern(q string) string {
	return "%" + EscapeLike(strings.ToLower(q)) + "%"
}

// Term pairs a column with the text it must contain.
type Term struct {
	Column string
	Text   string
}

// ContainsFold returns a condition matching rows where any of columns
// contains q, case-insensitively and literally. Columns are trusted
// identifiers, never user input.
func ContainsFold(db *gorm.DB, q string, columns ...string) *gorm.DB {
	terms := make([]Term, len(columns))
	for i, col := range columns {
		terms[i] = Term{Column: col, Text: q}
	}
	return AnyContainsFold(db, terms...)
}

// AnyContainsFold is ContainsFold with a separate text per column.
func AnyContainsFold(db *gorm.DB, terms ...Term) *gorm.DB {
	if len(terms) == 0 {
		return db
	}
	fold := foldFunc(db)
	clauses := make([]string, len(terms))
	args := make([]interface{}, len(terms))
	for i, t := range terms {
		clauses[i] = fold + "(" + t.Column + ") LIKE ? ESCAPE '" + likeEscape + "'"
		args[i] = ContainsPattern(t.Text)
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func foldFunc(db *gorm.DB) string {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return FoldFunc
	}
	return "LOWER"
}
