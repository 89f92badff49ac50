package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// storedTimeLayout is fixed width so that text comparison in SQL orders the
// same way as the instants do.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

var legacyLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseTime reads stored instants. Values without a zone predate the fixed
// layout and are read as wall-clock time in loc.
func parseTime(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t.UTC(), nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range legacyLayouts {
		if parsed, legacyErr := time.ParseInLocation(layout, raw, loc); legacyErr == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q: %w", raw, err)
}

func parseNullTime(raw sql.NullString, loc *time.Location) (*time.Time, error) {
	if !raw.Valid {
		return nil, nil
	}
	t, err := parseTime(raw.String, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}
