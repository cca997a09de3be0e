package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AnswerList stores a question's ordered answer options as a JSON array.
type AnswerList []Answer

// Answer is one multiple-choice option as persisted.
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Value implements the driver.Valuer interface
func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*a = AnswerList{}
		return nil
	}

	return json.Unmarshal(bytesToParse, a)
}

// Question is the persistence model for a quiz question.
type Question struct {
	ID        string     `db:"ID"`   // ULID
	Text      string     `db:"TEXT"` // Question text
	Topic     string     `db:"TOPIC"`
	Answers   AnswerList `db:"ANSWERS"` // JSON array, ordered
	CreatedAt time.Time  `db:"CREATED_AT"`
	UpdatedAt time.Time  `db:"UPDATED_AT"`
}

// CommunityEvent is the persistence model for a community event.
type CommunityEvent struct {
	ID          string         `db:"ID"`    // ULID
	Title       string         `db:"TITLE"` // Unique
	Description string         `db:"DESCRIPTION"`
	XPReward    int64          `db:"XP_REWARD"`
	CoinReward  int64          `db:"COIN_REWARD"`
	BadgeReward sql.NullString `db:"BADGE_REWARD"` // NULL means no badge
	StartDate   time.Time      `db:"START_DATE"`
	EndDate     time.Time      `db:"END_DATE"`
	IsActive    int            `db:"IS_ACTIVE"` // Oracle NUMBER(1)
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}
