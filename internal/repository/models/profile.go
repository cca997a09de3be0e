package models

import (
	"time"
)

// UserProfile is the persistence model for one identity's progression record.
// Set-valued fields are stored as JSON arrays; set semantics are enforced by
// the service layer before writes.
type UserProfile struct {
	ID              string      `db:"ID"`               // ULID
	IdentityID      string      `db:"IDENTITY_ID"`      // Stable subject from the identity authority
	Email           string      `db:"EMAIL"`            // Unique email claim
	Role            string      `db:"ROLE"`             // "student" or "teacher", fixed at creation
	XP              int64       `db:"XP"`               // Experience points
	Coins           int64       `db:"COINS"`            // Coin balance
	Rank            int         `db:"RANK"`             // Denormalized, set once at creation
	Badges          StringSlice `db:"BADGES"`           // JSON array, no duplicates
	Achievements    StringSlice `db:"ACHIEVEMENTS"`     // JSON array, no duplicates
	CompletedEvents StringSlice `db:"COMPLETED_EVENTS"` // JSON array, the idempotence guard
	CreatedAt       time.Time   `db:"CREATED_AT"`
	UpdatedAt       time.Time   `db:"UPDATED_AT"`
}
