package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"ecoquest/internal/config"
	"ecoquest/internal/domain"
	"ecoquest/internal/logger"
	"ecoquest/internal/util"

	"go.uber.org/zap"
)

// ProgressionMetrics receives reward ledger counters. Implemented by
// metrics.Collector; a nil recorder disables recording.
type ProgressionMetrics interface {
	RecordQuizCompletion(xp int64)
	RecordEventCompletion(xp, coins int64, newBadges int)
}

// ProfileService owns every mutation of a user's progression state: profile
// creation with one-shot role elevation, quiz XP grants and community event
// completion. All reward paths go through here so their invariants hold in
// one place.
type ProfileService interface {
	// GetProfile returns the profile for a verified identity.
	GetProfile(ctx context.Context, identityID string) (*domain.UserProfile, error)

	// CreateProfile creates the profile on first authenticated request.
	// Returns the existing profile with created=false when one already
	// exists for the identity.
	CreateProfile(ctx context.Context, identityID, email, teacherCode string) (profile *domain.UserProfile, created bool, err error)

	// CompleteQuiz grants score XP for one quiz session. Not idempotent:
	// every invocation grants the stated XP, since each represents a
	// distinct completed session. Callers must not retry blindly.
	CompleteQuiz(ctx context.Context, identityID, email string, score int64) (*domain.UserProfile, string, error)

	// CompleteEvent grants eventID's rewards exactly once per profile.
	CompleteEvent(ctx context.Context, identityID, eventID string) (profile *domain.UserProfile, newBadges []string, message string, err error)
}

type profileServiceImpl struct {
	profileRepo domain.ProfileRepository
	eventRepo   domain.EventRepository
	txManager   domain.TransactionManager
	appConfig   *config.Config
	metrics     ProgressionMetrics
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(
	profileRepo domain.ProfileRepository,
	eventRepo domain.EventRepository,
	txManager domain.TransactionManager,
	appConfig *config.Config,
	metrics ProgressionMetrics,
) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		appConfig:   appConfig,
		metrics:     metrics,
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, domain.NewStoreUnavailableError("Error fetching user profile.", err)
	}
	if profile == nil {
		return nil, domain.NewProfileNotFoundError()
	}
	return profile, nil
}

// CreateProfile assigns the role from the one-time teacher code check before
// anything is persisted; the role is immutable afterwards.
func (s *profileServiceImpl) CreateProfile(ctx context.Context, identityID, email, teacherCode string) (*domain.UserProfile, bool, error) {
	appLogger := logger.Get()

	existing, err := s.profileRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, false, domain.NewStoreUnavailableError("Error creating user profile.", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	role := domain.RoleStudent
	if teacherCode != "" && s.appConfig.TeacherCode != "" &&
		subtle.ConstantTimeCompare([]byte(teacherCode), []byte(s.appConfig.TeacherCode)) == 1 {
		role = domain.RoleTeacher
	}

	profile := domain.NewUserProfile(identityID, email, role)
	profile.ID = util.NewULID()
	if err := profile.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if de, ok := err.(*domain.DomainError); ok && de.Code == domain.CodeConflict {
			// Lost a creation race for the same identity; the winner's
			// profile is the answer. A true email collision stays a conflict.
			winner, getErr := s.profileRepo.GetByIdentityID(ctx, identityID)
			if getErr == nil && winner != nil {
				return winner, false, nil
			}
			return nil, false, de
		}
		return nil, false, domain.NewStoreUnavailableError("Error creating user profile.", err)
	}

	appLogger.Info("User profile created",
		zap.String("identityID", identityID),
		zap.String("role", string(role)))
	return profile, true, nil
}

// CompleteQuiz applies the XP grant with upsert semantics. The fast path is
// a single atomic increment; first-ever submissions fall back to a locked
// create inside a transaction.
func (s *profileServiceImpl) CompleteQuiz(ctx context.Context, identityID, email string, score int64) (*domain.UserProfile, string, error) {
	appLogger := logger.Get()

	if score < 0 {
		return nil, "", domain.ValidationErrors{domain.NewValidationError("score", "score must be a non-negative integer")}
	}

	profile, err := s.profileRepo.IncrementXP(ctx, identityID, score)
	if err != nil {
		return nil, "", domain.NewStoreUnavailableError("Error updating user XP.", err)
	}

	if profile == nil {
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			locked, err := s.profileRepo.GetByIdentityIDForUpdate(txCtx, identityID)
			if err != nil {
				return err
			}
			if locked == nil {
				created := domain.NewUserProfile(identityID, email, domain.RoleStudent)
				created.ID = util.NewULID()
				created.XP += score
				if err := s.profileRepo.Create(txCtx, created); err != nil {
					return err
				}
				profile = created
				return nil
			}
			locked.XP += score
			if err := s.profileRepo.Update(txCtx, locked); err != nil {
				return err
			}
			profile = locked
			return nil
		})
		if err != nil {
			if de, ok := err.(*domain.DomainError); ok && de.Code == domain.CodeConflict {
				// Lost the creation race; the row now exists, so the plain
				// increment applies.
				profile, err = s.profileRepo.IncrementXP(ctx, identityID, score)
				if err != nil || profile == nil {
					return nil, "", domain.NewStoreUnavailableError("Error updating user XP.", err)
				}
			} else {
				return nil, "", domain.NewStoreUnavailableError("Error updating user XP.", err)
			}
		}
	}

	if s.metrics != nil {
		s.metrics.RecordQuizCompletion(score)
	}
	appLogger.Info("Quiz completion recorded",
		zap.String("identityID", identityID),
		zap.Int64("score", score),
		zap.Int64("xp", profile.XP))

	message := fmt.Sprintf("Score saved! You earned %d XP!", score)
	return profile, message, nil
}

// CompleteEvent runs the whole reward sequence as one transaction scoped to
// the profile row: idempotence check, reward apply and the first-event
// achievement bonus commit or roll back together.
func (s *profileServiceImpl) CompleteEvent(ctx context.Context, identityID, eventID string) (*domain.UserProfile, []string, string, error) {
	appLogger := logger.Get()

	var (
		profile   *domain.UserProfile
		newBadges []string
		event     *domain.CommunityEvent
	)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.profileRepo.GetByIdentityIDForUpdate(txCtx, identityID)
		if err != nil {
			return domain.NewStoreUnavailableError("Error completing event.", err)
		}
		if locked == nil {
			return domain.NewProfileNotFoundError()
		}

		event, err = s.eventRepo.GetByID(txCtx, eventID)
		if err != nil {
			return domain.NewStoreUnavailableError("Error completing event.", err)
		}
		// Absent, inactive and expired collapse into one reported condition.
		if event == nil || !event.IsOpen(time.Now()) {
			return domain.NewEventNotFoundError()
		}

		if locked.HasCompletedEvent(eventID) {
			return domain.NewAlreadyCompletedError()
		}

		locked.XP += event.XPReward
		locked.Coins += event.CoinReward
		locked.CompletedEvents = append(locked.CompletedEvents, eventID)

		newBadges = []string{}
		if event.BadgeReward != "" && !locked.HasBadge(event.BadgeReward) {
			locked.Badges = append(locked.Badges, event.BadgeReward)
			newBadges = append(newBadges, event.BadgeReward)
		}

		// First community event ever completed unlocks the achievement and
		// its fixed bonus, independent of which event triggered it.
		if !locked.HasAchievement(domain.CommunityContributorAchievement) {
			locked.Achievements = append(locked.Achievements, domain.CommunityContributorAchievement)
			locked.XP += domain.CommunityContributorBonusXP
		}

		if err := s.profileRepo.Update(txCtx, locked); err != nil {
			return domain.NewStoreUnavailableError("Error completing event.", err)
		}
		profile = locked
		return nil
	})
	if err != nil {
		return nil, nil, "", err
	}

	if s.metrics != nil {
		s.metrics.RecordEventCompletion(event.XPReward, event.CoinReward, len(newBadges))
	}
	appLogger.Info("Community event completed",
		zap.String("identityID", identityID),
		zap.String("eventID", eventID),
		zap.Int64("xpReward", event.XPReward),
		zap.Int64("coinReward", event.CoinReward),
		zap.Strings("newBadges", newBadges))

	message := fmt.Sprintf("Event '%s' completed! You earned %d XP and %d Coins.", event.Title, event.XPReward, event.CoinReward)
	return profile, newBadges, message, nil
}
