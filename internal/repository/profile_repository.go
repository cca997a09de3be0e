package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoquest/internal/domain"
	"ecoquest/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const profileColumns = `id, identity_id, email, role, xp, coins, rank, badges, achievements, completed_events, created_at, updated_at`

// sqlxProfileRepository implements domain.ProfileRepository using sqlx.
type sqlxProfileRepository struct {
	db *sqlx.DB
}

// NewSQLXProfileRepository creates a new profile repository over db.
func NewSQLXProfileRepository(db *sqlx.DB) domain.ProfileRepository {
	return &sqlxProfileRepository{db: db}
}

func toDomainProfile(m *models.UserProfile) *domain.UserProfile {
	if m == nil {
		return nil
	}
	return &domain.UserProfile{
		ID:              m.ID,
		IdentityID:      m.IdentityID,
		Email:           m.Email,
		Role:            domain.Role(m.Role),
		XP:              m.XP,
		Coins:           m.Coins,
		Rank:            m.Rank,
		Badges:          []string(m.Badges),
		Achievements:    []string(m.Achievements),
		CompletedEvents: []string(m.CompletedEvents),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainProfile(p *domain.UserProfile) *models.UserProfile {
	if p == nil {
		return nil
	}
	return &models.UserProfile{
		ID:              p.ID,
		IdentityID:      p.IdentityID,
		Email:           p.Email,
		Role:            string(p.Role),
		XP:              p.XP,
		Coins:           p.Coins,
		Rank:            p.Rank,
		Badges:          models.StringSlice(p.Badges),
		Achievements:    models.StringSlice(p.Achievements),
		CompletedEvents: models.StringSlice(p.CompletedEvents),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// isUniqueViolation reports whether err is an Oracle unique-constraint error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ORA-00001") || strings.Contains(strings.ToLower(msg), "unique constraint")
}

func (r *sqlxProfileRepository) getByIdentityID(ctx context.Context, identityID string, forUpdate bool) (*domain.UserProfile, error) {
	exec := GetExecutor(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM user_profiles WHERE identity_id = :identity_id`, profileColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, map[string]interface{}{"identity_id": identityID})
	if err != nil {
		return nil, fmt.Errorf("failed to query profile by identity_id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read profile row: %w", err)
		}
		return nil, nil // Not found; services decide whether that is an error
	}

	var m models.UserProfile
	if err := rows.StructScan(&m); err != nil {
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}
	return toDomainProfile(&m), nil
}

// GetByIdentityID retrieves a profile by its identity subject. Returns
// (nil, nil) when absent.
func (r *sqlxProfileRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	return r.getByIdentityID(ctx, identityID, false)
}

// GetByIdentityIDForUpdate locks the profile row for the surrounding
// transaction. The lock is what serializes concurrent reward mutations for
// one profile.
func (r *sqlxProfileRepository) GetByIdentityIDForUpdate(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	return r.getByIdentityID(ctx, identityID, true)
}

// Create inserts a new profile. Duplicate identity_id or email surfaces as a
// CONFLICT domain error.
func (r *sqlxProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainProfile(profile)
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	// Bind names must match the model db tags exactly; sqlx resolves them
	// case-sensitively.
	query := `INSERT INTO user_profiles (id, identity_id, email, role, xp, coins, rank, badges, achievements, completed_events, created_at, updated_at)
	          VALUES (:ID, :IDENTITY_ID, :EMAIL, :ROLE, :XP, :COINS, :RANK, :BADGES, :ACHIEVEMENTS, :COMPLETED_EVENTS, :CREATED_AT, :UPDATED_AT)`

	if _, err := sqlx.NamedExecContext(ctx, exec, query, m); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("A profile already exists for this identity or email.")
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	profile.CreatedAt = m.CreatedAt
	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// Update writes the progression fields back. Callers hold the row lock.
func (r *sqlxProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainProfile(profile)
	m.UpdatedAt = time.Now()

	query := `UPDATE user_profiles SET
	            xp = :XP,
	            coins = :COINS,
	            badges = :BADGES,
	            achievements = :ACHIEVEMENTS,
	            completed_events = :COMPLETED_EVENTS,
	            updated_at = :UPDATED_AT
	          WHERE identity_id = :IDENTITY_ID`

	result, err := sqlx.NamedExecContext(ctx, exec, query, m)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// IncrementXP applies an atomic single-statement increment, then re-reads the
// row. Returns (nil, nil) when no profile exists.
func (r *sqlxProfileRepository) IncrementXP(ctx context.Context, identityID string, delta int64) (*domain.UserProfile, error) {
	exec := GetExecutor(ctx, r.db)

	query := `UPDATE user_profiles SET xp = xp + :delta, updated_at = :updated_at WHERE identity_id = :identity_id`
	result, err := sqlx.NamedExecContext(ctx, exec, query, map[string]interface{}{
		"delta":       delta,
		"updated_at":  time.Now(),
		"identity_id": identityID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment xp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.getByIdentityID(ctx, identityID, false)
}

// GetTopByXP returns up to limit profiles ordered by xp descending. Ties
// break by id ascending so repeated reads of unchanged data return the same
// order.
func (r *sqlxProfileRepository) GetTopByXP(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	exec := GetExecutor(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM user_profiles ORDER BY xp DESC, id ASC FETCH FIRST %d ROWS ONLY`, profileColumns, limit)

	var rows []models.UserProfile
	if err := sqlx.SelectContext(ctx, exec, &rows, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.UserProfile{}, nil
		}
		return nil, fmt.Errorf("failed to query leaderboard profiles: %w", err)
	}

	profiles := make([]*domain.UserProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, toDomainProfile(&rows[i]))
	}
	return profiles, nil
}
