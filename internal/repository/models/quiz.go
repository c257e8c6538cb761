package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a TEXT column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Topic mirrors the quiz_topics table.
type Topic struct {
	ID            string       `db:"id"`
	Topic         string       `db:"topic"`
	Category      string       `db:"category"`
	Subcategory   string       `db:"subcategory"`
	CreatedAt     time.Time    `db:"created_at"`
	LastAttemptAt sql.NullTime `db:"last_attempt_at"`
}

// Question mirrors the quiz_questions table. Options are stored as a JSON
// array, matching how the external data file has always held them.
type Question struct {
	ID          string      `db:"id"`
	TopicID     string      `db:"topic_id"`
	Question    string      `db:"question"`
	Options     StringSlice `db:"options"`
	RightOption string      `db:"right_option"`
}

// Attempt mirrors the quiz_attempts table.
type Attempt struct {
	ID          string    `db:"id"`
	TopicID     string    `db:"topic_id"`
	AttemptedAt time.Time `db:"attempted_at"`
}
