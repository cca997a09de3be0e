package domain

import (
	"context"
	"time"
)

// Answer is one option of a multiple-choice question.
type Answer struct {
	Text      string
	IsCorrect bool
}

// Question is a quiz question authored by a teacher.
type Question struct {
	ID        string
	Text      string
	Topic     string
	Answers   []Answer
	CreatedAt time.Time
	UpdatedAt time.Time
}

const DefaultTopic = "General"

// Validate checks authoring-time invariants. At least one answer must be
// marked correct; the storage layer does not enforce this.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.Text == "" {
		errs = append(errs, NewValidationError("question", "question text is required"))
	}
	if len(q.Answers) == 0 {
		errs = append(errs, NewValidationError("answers", "at least one answer is required"))
	} else {
		hasCorrect := false
		for _, a := range q.Answers {
			if a.Text == "" {
				errs = append(errs, NewValidationError("answers", "answer text is required"))
				break
			}
			if a.IsCorrect {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			errs = append(errs, NewValidationError("answers", "at least one answer must be marked correct"))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CommunityEvent is a time-bounded task granting one-time rewards.
type CommunityEvent struct {
	ID          string
	Title       string
	Description string
	XPReward    int64
	CoinReward  int64
	// BadgeReward is the optional badge granted on completion. Empty means
	// the event grants no badge.
	BadgeReward string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the event may still be completed at now.
func (e *CommunityEvent) IsOpen(now time.Time) bool {
	return e.IsActive && !e.EndDate.Before(now)
}

// Validate checks authoring-time invariants for a new event.
func (e *CommunityEvent) Validate() error {
	var errs ValidationErrors
	if e.Title == "" {
		errs = append(errs, NewValidationError("title", "title is required"))
	}
	if e.Description == "" {
		errs = append(errs, NewValidationError("description", "description is required"))
	}
	if e.XPReward < 0 {
		errs = append(errs, NewValidationError("xpReward", "xpReward must be >= 0"))
	}
	if e.CoinReward < 0 {
		errs = append(errs, NewValidationError("coinReward", "coinReward must be >= 0"))
	}
	if e.StartDate.IsZero() {
		errs = append(errs, NewValidationError("startDate", "startDate is required"))
	}
	if e.EndDate.IsZero() {
		errs = append(errs, NewValidationError("endDate", "endDate is required"))
	} else if !e.StartDate.IsZero() && e.EndDate.Before(e.StartDate) {
		errs = append(errs, NewValidationError("endDate", "endDate must not be before startDate"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuestionRepository defines the persistence port for quiz questions.
type QuestionRepository interface {
	GetAll(ctx context.Context) ([]*Question, error)
	Save(ctx context.Context, question *Question) error
}

// EventRepository defines the persistence port for community events.
type EventRepository interface {
	// GetActive returns events that are active and whose end date is at or
	// after now.
	GetActive(ctx context.Context, now time.Time) ([]*CommunityEvent, error)

	// GetByID returns (nil, nil) if no event exists.
	GetByID(ctx context.Context, id string) (*CommunityEvent, error)

	// Save persists a new event. Duplicate title is a CONFLICT.
	Save(ctx context.Context, event *CommunityEvent) error
}
