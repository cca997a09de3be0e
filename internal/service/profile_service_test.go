package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecoquest/internal/config"
	"ecoquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{TeacherCode: "SECRET_TEACHER_CODE"}
}

func newTestProfile(identityID string) *domain.UserProfile {
	p := domain.NewUserProfile(identityID, identityID+"@example.com", domain.RoleStudent)
	p.ID = "01HTESTPROFILE0000000000AB"
	return p
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	expected := newTestProfile("identity-1")
	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(expected, nil)

	profile, err := svc.GetProfile(context.Background(), "identity-1")

	assert.NoError(t, err)
	assert.Equal(t, expected, profile)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	mockProfileRepo.On("GetByIdentityID", mock.Anything, "ghost").Return(nil, nil)

	profile, err := svc.GetProfile(context.Background(), "ghost")

	assert.Nil(t, profile)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeProfileNotFound, domainErr.Code)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_StudentDefaults(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(nil, nil)
	mockProfileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, created, err := svc.CreateProfile(context.Background(), "identity-1", "a@example.com", "")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleStudent, profile.Role)
	assert.Equal(t, int64(domain.WelcomeBonusXP), profile.XP)
	assert.Equal(t, int64(0), profile.Coins)
	assert.Equal(t, domain.DefaultRank, profile.Rank)
	assert.Equal(t, []string{domain.WelcomeBadge}, profile.Badges)
	assert.Empty(t, profile.Achievements)
	assert.Empty(t, profile.CompletedEvents)
	assert.NotEmpty(t, profile.ID)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_TeacherCodeElevates(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(nil, nil)
	mockProfileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, created, err := svc.CreateProfile(context.Background(), "identity-1", "a@example.com", "SECRET_TEACHER_CODE")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleTeacher, profile.Role)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_WrongCodeStaysStudent(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(nil, nil)
	mockProfileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, _, err := svc.CreateProfile(context.Background(), "identity-1", "a@example.com", "WRONG")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, profile.Role)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_ReturnsExisting(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	existing := newTestProfile("identity-1")
	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(existing, nil)

	profile, created, err := svc.CreateProfile(context.Background(), "identity-1", "a@example.com", "SECRET_TEACHER_CODE")

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, profile)
	// The teacher code must not elevate an already existing profile.
	assert.Equal(t, domain.RoleStudent, profile.Role)
	mockProfileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileService_CreateProfile_LosesRaceReturnsWinner(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, nil, testConfig(), nil)

	winner := newTestProfile("identity-1")
	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(nil, nil).Once()
	mockProfileRepo.On("Create", mock.Anything, mock.Anything).
		Return(domain.NewError(domain.CodeConflict, "duplicate", nil))
	mockProfileRepo.On("GetByIdentityID", mock.Anything, "identity-1").Return(winner, nil).Once()

	profile, created, err := svc.CreateProfile(context.Background(), "identity-1", "a@example.com", "")

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner, profile)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteQuiz_ExistingProfileFastPath(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, passthroughTxManager{}, testConfig(), nil)

	updated := newTestProfile("identity-1")
	updated.XP = int64(domain.WelcomeBonusXP) + 85
	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(85)).Return(updated, nil)

	profile, message, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", 85)

	assert.NoError(t, err)
	assert.Equal(t, int64(domain.WelcomeBonusXP)+85, profile.XP)
	assert.Equal(t, "Score saved! You earned 85 XP!", message)
	mockProfileRepo.AssertNotCalled(t, "GetByIdentityIDForUpdate", mock.Anything, mock.Anything)
}

func TestProfileService_CompleteQuiz_NotIdempotent(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, passthroughTxManager{}, testConfig(), nil)

	first := newTestProfile("identity-1")
	first.XP = int64(domain.WelcomeBonusXP) + 50
	second := newTestProfile("identity-1")
	second.XP = int64(domain.WelcomeBonusXP) + 100
	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(50)).Return(first, nil).Once()
	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(50)).Return(second, nil).Once()

	p1, _, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", 50)
	assert.NoError(t, err)
	p2, _, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", 50)
	assert.NoError(t, err)

	assert.Equal(t, p1.XP+50, p2.XP)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteQuiz_CreatesMissingProfile(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, passthroughTxManager{}, testConfig(), nil)

	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(40)).Return(nil, nil)
	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(nil, nil)
	mockProfileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, message, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", 40)

	assert.NoError(t, err)
	// The fresh profile carries the welcome bonus plus the quiz score.
	assert.Equal(t, int64(domain.WelcomeBonusXP)+40, profile.XP)
	assert.Equal(t, domain.RoleStudent, profile.Role)
	assert.Equal(t, "Score saved! You earned 40 XP!", message)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteQuiz_CreationRaceFallsBackToIncrement(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, passthroughTxManager{}, testConfig(), nil)

	raced := newTestProfile("identity-1")
	raced.XP = int64(domain.WelcomeBonusXP) + 40
	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(40)).Return(nil, nil).Once()
	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(nil, nil)
	mockProfileRepo.On("Create", mock.Anything, mock.Anything).
		Return(domain.NewError(domain.CodeConflict, "duplicate", nil))
	mockProfileRepo.On("IncrementXP", mock.Anything, "identity-1", int64(40)).Return(raced, nil).Once()

	profile, _, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", 40)

	assert.NoError(t, err)
	assert.Equal(t, raced, profile)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteQuiz_NegativeScore(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	svc := NewProfileService(mockProfileRepo, nil, passthroughTxManager{}, testConfig(), nil)

	_, _, err := svc.CompleteQuiz(context.Background(), "identity-1", "a@example.com", -5)

	var verrs domain.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	mockProfileRepo.AssertNotCalled(t, "IncrementXP", mock.Anything, mock.Anything, mock.Anything)
}

func openEvent(id string) *domain.CommunityEvent {
	return &domain.CommunityEvent{
		ID:          id,
		Title:       "Neighborhood Cleanup Week",
		Description: "Join a local cleanup.",
		XPReward:    50,
		CoinReward:  20,
		BadgeReward: "Litter Fighter",
		StartDate:   time.Now().Add(-24 * time.Hour),
		EndDate:     time.Now().Add(24 * time.Hour),
		IsActive:    true,
	}
}

func TestProfileService_CompleteEvent_FirstCompletion(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	profile := newTestProfile("identity-1")
	event := openEvent("01HEVENT000000000000000000")

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	mockProfileRepo.On("Update", mock.Anything, profile).Return(nil)

	updated, newBadges, message, err := svc.CompleteEvent(context.Background(), "identity-1", event.ID)

	assert.NoError(t, err)
	// Event XP plus the one-time first-event achievement bonus.
	assert.Equal(t, int64(domain.WelcomeBonusXP)+event.XPReward+domain.CommunityContributorBonusXP, updated.XP)
	assert.Equal(t, event.CoinReward, updated.Coins)
	assert.Equal(t, []string{event.ID}, updated.CompletedEvents)
	assert.Equal(t, []string{"Litter Fighter"}, newBadges)
	assert.Contains(t, updated.Achievements, domain.CommunityContributorAchievement)
	assert.Equal(t, "Event 'Neighborhood Cleanup Week' completed! You earned 50 XP and 20 Coins.", message)
	mockProfileRepo.AssertExpectations(t)
	mockEventRepo.AssertExpectations(t)
}

func TestProfileService_CompleteEvent_AlreadyCompleted(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	event := openEvent("01HEVENT000000000000000000")
	profile := newTestProfile("identity-1")
	profile.CompletedEvents = []string{event.ID}

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, event.ID).Return(event, nil)

	_, _, _, err := svc.CompleteEvent(context.Background(), "identity-1", event.ID)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAlreadyCompleted, domainErr.Code)
	assert.Equal(t, "You have already completed this event.", domainErr.Message)
	mockProfileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_CompleteEvent_AchievementBonusGrantedOnce(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	second := openEvent("01HEVENT111111111111111111")
	second.Title = "Plant a Tree Challenge"
	second.BadgeReward = ""

	profile := newTestProfile("identity-1")
	profile.CompletedEvents = []string{"01HEVENT000000000000000000"}
	profile.Achievements = []string{domain.CommunityContributorAchievement}
	baseXP := profile.XP

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, second.ID).Return(second, nil)
	mockProfileRepo.On("Update", mock.Anything, profile).Return(nil)

	updated, newBadges, _, err := svc.CompleteEvent(context.Background(), "identity-1", second.ID)

	assert.NoError(t, err)
	// No second achievement bonus and no badge from a badgeless event.
	assert.Equal(t, baseXP+second.XPReward, updated.XP)
	assert.Empty(t, newBadges)
	assert.Equal(t, []string{domain.CommunityContributorAchievement}, updated.Achievements)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteEvent_DuplicateBadgeNotReAwarded(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	event := openEvent("01HEVENT111111111111111111")
	profile := newTestProfile("identity-1")
	profile.Badges = append(profile.Badges, event.BadgeReward)

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	mockProfileRepo.On("Update", mock.Anything, profile).Return(nil)

	updated, newBadges, _, err := svc.CompleteEvent(context.Background(), "identity-1", event.ID)

	assert.NoError(t, err)
	assert.Empty(t, newBadges)
	assert.Len(t, updated.Badges, 2)
	mockProfileRepo.AssertExpectations(t)
}

func TestProfileService_CompleteEvent_ExpiredEvent(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	event := openEvent("01HEVENT000000000000000000")
	event.EndDate = time.Now().Add(-time.Hour)
	profile := newTestProfile("identity-1")

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, event.ID).Return(event, nil)

	_, _, _, err := svc.CompleteEvent(context.Background(), "identity-1", event.ID)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeEventNotFound, domainErr.Code)
	assert.Equal(t, "Event not found or not active.", domainErr.Message)
}

func TestProfileService_CompleteEvent_InactiveEvent(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	event := openEvent("01HEVENT000000000000000000")
	event.IsActive = false
	profile := newTestProfile("identity-1")

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, event.ID).Return(event, nil)

	_, _, _, err := svc.CompleteEvent(context.Background(), "identity-1", event.ID)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeEventNotFound, domainErr.Code)
}

func TestProfileService_CompleteEvent_UnknownEvent(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	profile := newTestProfile("identity-1")
	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "identity-1").Return(profile, nil)
	mockEventRepo.On("GetByID", mock.Anything, "01HUNKNOWN0000000000000000").Return(nil, nil)

	_, _, _, err := svc.CompleteEvent(context.Background(), "identity-1", "01HUNKNOWN0000000000000000")

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeEventNotFound, domainErr.Code)
}

func TestProfileService_CompleteEvent_ProfileMissing(t *testing.T) {
	mockProfileRepo := new(MockProfileRepository)
	mockEventRepo := new(MockEventRepository)
	svc := NewProfileService(mockProfileRepo, mockEventRepo, passthroughTxManager{}, testConfig(), nil)

	mockProfileRepo.On("GetByIdentityIDForUpdate", mock.Anything, "ghost").Return(nil, nil)

	_, _, _, err := svc.CompleteEvent(context.Background(), "ghost", "01HEVENT000000000000000000")

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeProfileNotFound, domainErr.Code)
	mockEventRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
