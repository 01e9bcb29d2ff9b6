// Package models holds the GORM entities of the back office.
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as a JSON number, the way API clients expect it.
	decimal.MarshalJSONWithoutQuotes = true
}

// Model is embedded by every entity. Rows are hard-deleted.
type Model struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// StringList is a []string stored as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return encodeJSON([]string(l))
}

// StringListText is s as it appears inside a stored StringList, without
// the surrounding quotes. Matching the raw column compares against it.
func StringListText(s string) string {
	out, err := encodeJSON(s)
	if err != nil {
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(out, `"`), `"`)
}

// encodeJSON leaves &, < and > as they are so the stored text matches
// what users search for.
func encodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("models: scan StringList: %w", err)
	}
	*l = out
	return nil
}

// MarshalJSON renders a nil list as [] rather than null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// GormDataType keeps the column portable across drivers.
func (StringList) GormDataType() string { return "text" }
