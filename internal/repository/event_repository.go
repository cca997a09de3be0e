package repository

import (
	"context"
	"fmt"
	"time"

	"ecoquest/internal/domain"
	"ecoquest/internal/repository/models"
	"ecoquest/internal/util"

	"github.com/jmoiron/sqlx"
)

const eventColumns = `id, title, description, xp_reward, coin_reward, badge_reward, start_date, end_date, is_active, created_at, updated_at`

// sqlxEventRepository implements domain.EventRepository using sqlx.
type sqlxEventRepository struct {
	db *sqlx.DB
}

// NewSQLXEventRepository creates a new community event repository over db.
func NewSQLXEventRepository(db *sqlx.DB) domain.EventRepository {
	return &sqlxEventRepository{db: db}
}

func toDomainEvent(m *models.CommunityEvent) *domain.CommunityEvent {
	if m == nil {
		return nil
	}
	return &domain.CommunityEvent{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		XPReward:    m.XPReward,
		CoinReward:  m.CoinReward,
		BadgeReward: m.BadgeReward.String,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsActive:    m.IsActive != 0,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainEvent(e *domain.CommunityEvent) *models.CommunityEvent {
	if e == nil {
		return nil
	}
	isActive := 0
	if e.IsActive {
		isActive = 1
	}
	return &models.CommunityEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		XPReward:    e.XPReward,
		CoinReward:  e.CoinReward,
		BadgeReward: util.StringToNullString(e.BadgeReward),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsActive:    isActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// GetActive returns events that are open for completion at now.
func (r *sqlxEventRepository) GetActive(ctx context.Context, now time.Time) ([]*domain.CommunityEvent, error) {
	exec := GetExecutor(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM community_events WHERE is_active = 1 AND end_date >= :now ORDER BY end_date ASC, id ASC`, eventColumns)

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, map[string]interface{}{"now": now})
	if err != nil {
		return nil, fmt.Errorf("failed to query active events: %w", err)
	}
	defer rows.Close()

	events := []*domain.CommunityEvent{}
	for rows.Next() {
		var m models.CommunityEvent
		if err := rows.StructScan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, toDomainEvent(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event rows: %w", err)
	}
	return events, nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when absent.
func (r *sqlxEventRepository) GetByID(ctx context.Context, id string) (*domain.CommunityEvent, error) {
	exec := GetExecutor(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM community_events WHERE id = :id`, eventColumns)

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query event by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read event row: %w", err)
		}
		return nil, nil
	}

	var m models.CommunityEvent
	if err := rows.StructScan(&m); err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}
	return toDomainEvent(&m), nil
}

// Save persists a new event. Duplicate titles surface as CONFLICT.
func (r *sqlxEventRepository) Save(ctx context.Context, event *domain.CommunityEvent) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainEvent(event)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	// Bind names must match the model db tags exactly; sqlx resolves them
	// case-sensitively.
	query := `INSERT INTO community_events (id, title, description, xp_reward, coin_reward, badge_reward, start_date, end_date, is_active, created_at, updated_at)
	          VALUES (:ID, :TITLE, :DESCRIPTION, :XP_REWARD, :COIN_REWARD, :BADGE_REWARD, :START_DATE, :END_DATE, :IS_ACTIVE, :CREATED_AT, :UPDATED_AT)`

	if _, err := sqlx.NamedExecContext(ctx, exec, query, m); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("An event with this title already exists.")
		}
		return fmt.Errorf("failed to save event: %w", err)
	}

	event.CreatedAt = m.CreatedAt
	event.UpdatedAt = m.UpdatedAt
	return nil
}
