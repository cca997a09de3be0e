package domain

import (
	"context"
	"time"
)

// Role is the privilege level of a profile. It is fixed at profile creation
// and only readable thereafter.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Starting values applied uniformly to every new profile. The welcome bonus
// is fixed so profile creation stays deterministic.
const (
	WelcomeBonusXP   = 120
	WelcomeBadge     = "Eco Starter"
	DefaultRank      = 5
	DefaultStartCoin = 0
)

// Reward constants for the first-ever community event completion.
const (
	CommunityContributorAchievement = "Community Contributor"
	CommunityContributorBonusXP     = 10
)

// UserProfile is the authoritative progression record for one identity.
// All progression fields mutate only through the reward ledger.
type UserProfile struct {
	ID         string
	IdentityID string
	Email      string
	Role       Role
	XP         int64
	Coins      int64
	// Rank is a denormalized field set once at creation. It is not derived
	// from XP ordering; the leaderboard is the live ranking.
	Rank            int
	Badges          []string
	Achievements    []string
	CompletedEvents []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTeacher is the single authorization predicate for content mutation.
func (p *UserProfile) IsTeacher() bool {
	return p.Role == RoleTeacher
}

// HasCompletedEvent reports whether the idempotence guard holds eventID.
func (p *UserProfile) HasCompletedEvent(eventID string) bool {
	for _, id := range p.CompletedEvents {
		if id == eventID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the profile already owns the named badge.
func (p *UserProfile) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the profile already owns the named achievement.
func (p *UserProfile) HasAchievement(achievement string) bool {
	for _, a := range p.Achievements {
		if a == achievement {
			return true
		}
	}
	return false
}

// NewUserProfile creates a profile with the fixed welcome-bonus starting
// values. Role must be decided by the caller before this point.
func NewUserProfile(identityID, email string, role Role) *UserProfile {
	now := time.Now()
	return &UserProfile{
		IdentityID:      identityID,
		Email:           email,
		Role:            role,
		XP:              WelcomeBonusXP,
		Coins:           DefaultStartCoin,
		Rank:            DefaultRank,
		Badges:          []string{WelcomeBadge},
		Achievements:    []string{},
		CompletedEvents: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate validates the profile invariants that storage cannot express.
func (p *UserProfile) Validate() error {
	if p.IdentityID == "" {
		return ValidationErrors{NewValidationError("identity_id", "identity_id is required")}
	}
	if p.Email == "" {
		return ValidationErrors{NewValidationError("email", "email is required")}
	}
	if p.Role != RoleStudent && p.Role != RoleTeacher {
		return ValidationErrors{NewValidationError("role", "role must be student or teacher")}
	}
	return nil
}

// ProfileRepository defines the persistence port for user profiles.
//
// Atomicity contract: Create, Update and IncrementXP are single-record
// transactional. GetByIdentityIDForUpdate must only be called inside a
// transaction opened by TransactionManager; it locks the profile row so
// read-check-write sequences behave as if serialized per profile.
type ProfileRepository interface {
	// GetByIdentityID returns (nil, nil) if no profile exists.
	GetByIdentityID(ctx context.Context, identityID string) (*UserProfile, error)

	// GetByIdentityIDForUpdate locks the profile row for the duration of the
	// surrounding transaction. Returns (nil, nil) if no profile exists.
	GetByIdentityIDForUpdate(ctx context.Context, identityID string) (*UserProfile, error)

	// Create persists a new profile. Duplicate identity_id or email is a
	// CONFLICT.
	Create(ctx context.Context, profile *UserProfile) error

	// Update writes the progression fields back. Used only under a row lock.
	Update(ctx context.Context, profile *UserProfile) error

	// IncrementXP atomically adds delta to xp in a single statement and
	// returns the updated profile. Returns (nil, nil) if no profile exists.
	IncrementXP(ctx context.Context, identityID string, delta int64) (*UserProfile, error)

	// GetTopByXP returns up to limit profiles ordered by xp descending with
	// a deterministic tie order.
	GetTopByXP(ctx context.Context, limit int) ([]*UserProfile, error)
}

// TransactionManager runs fn within a single database transaction. The
// transaction is carried in the context so repositories transparently join it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
