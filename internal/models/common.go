package models

import (
	"fmt"
	"time"
)

// Timestamps holds the audit instants shared by every table.
type Timestamps struct {
	CreatedAt DBTime `db:"created_at"`
	UpdatedAt DBTime `db:"updated_at"`
}

// DBTime scans a timestamp from either a native time value (PostgreSQL) or
// its text form (SQLite). Values are always returned in UTC.
type DBTime struct {
	time.Time
}

var dbTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *DBTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DBTime", src)
	}
}

func (t *DBTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as a timestamp", s)
}
