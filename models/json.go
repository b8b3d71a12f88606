package models

import (
	"database/sql/driver"
	"fmt"
)

// JSON stores a raw JSON document in a jsonb column. Rows written by older
// clients may hold shapes we no longer produce; decoding stays tolerant and
// lives with the callers, not here.
type JSON []byte

// Value implements driver.Valuer. Empty documents persist as NULL.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("unsupported source type %T for JSON column", src)
	}
	return nil
}

// GormDataType keeps AutoMigrate on jsonb for this type.
func (JSON) GormDataType() string { return "jsonb" }
