package handler_test

import (
	"context"

	"ecoquest/internal/domain"
	"ecoquest/internal/dto"
)

// --- Manual Mocks ---

// MockProfileService
type MockProfileService struct {
	GetProfileFunc    func(ctx context.Context, identityID string) (*domain.UserProfile, error)
	CreateProfileFunc func(ctx context.Context, identityID, email, teacherCode string) (*domain.UserProfile, bool, error)
	CompleteQuizFunc  func(ctx context.Context, identityID, email string, score int64) (*domain.UserProfile, string, error)
	CompleteEventFunc func(ctx context.Context, identityID, eventID string) (*domain.UserProfile, []string, string, error)
}

func (m *MockProfileService) GetProfile(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, identityID)
	}
	panic("MockProfileService.GetProfileFunc not implemented")
}

func (m *MockProfileService) CreateProfile(ctx context.Context, identityID, email, teacherCode string) (*domain.UserProfile, bool, error) {
	if m.CreateProfileFunc != nil {
		return m.CreateProfileFunc(ctx, identityID, email, teacherCode)
	}
	panic("MockProfileService.CreateProfileFunc not implemented")
}

func (m *MockProfileService) CompleteQuiz(ctx context.Context, identityID, email string, score int64) (*domain.UserProfile, string, error) {
	if m.CompleteQuizFunc != nil {
		return m.CompleteQuizFunc(ctx, identityID, email, score)
	}
	panic("MockProfileService.CompleteQuizFunc not implemented")
}

func (m *MockProfileService) CompleteEvent(ctx context.Context, identityID, eventID string) (*domain.UserProfile, []string, string, error) {
	if m.CompleteEventFunc != nil {
		return m.CompleteEventFunc(ctx, identityID, eventID)
	}
	panic("MockProfileService.CompleteEventFunc not implemented")
}

// MockCatalogService
type MockCatalogService struct {
	GetAllQuestionsFunc   func(ctx context.Context) ([]*domain.Question, error)
	AddQuestionFunc       func(ctx context.Context, question *domain.Question) (*domain.Question, error)
	GenerateQuestionsFunc func(ctx context.Context, topic string, count int) ([]*domain.Question, error)
	GetActiveEventsFunc   func(ctx context.Context) ([]*domain.CommunityEvent, error)
	AddEventFunc          func(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error)
}

func (m *MockCatalogService) GetAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	if m.GetAllQuestionsFunc != nil {
		return m.GetAllQuestionsFunc(ctx)
	}
	panic("MockCatalogService.GetAllQuestionsFunc not implemented")
}

func (m *MockCatalogService) AddQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if m.AddQuestionFunc != nil {
		return m.AddQuestionFunc(ctx, question)
	}
	panic("MockCatalogService.AddQuestionFunc not implemented")
}

func (m *MockCatalogService) GenerateQuestions(ctx context.Context, topic string, count int) ([]*domain.Question, error) {
	if m.GenerateQuestionsFunc != nil {
		return m.GenerateQuestionsFunc(ctx, topic, count)
	}
	panic("MockCatalogService.GenerateQuestionsFunc not implemented")
}

func (m *MockCatalogService) GetActiveEvents(ctx context.Context) ([]*domain.CommunityEvent, error) {
	if m.GetActiveEventsFunc != nil {
		return m.GetActiveEventsFunc(ctx)
	}
	panic("MockCatalogService.GetActiveEventsFunc not implemented")
}

func (m *MockCatalogService) AddEvent(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error) {
	if m.AddEventFunc != nil {
		return m.AddEventFunc(ctx, event)
	}
	panic("MockCatalogService.AddEventFunc not implemented")
}

// MockLeaderboardService
type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context) ([]dto.LeaderboardEntry, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx)
	}
	panic("MockLeaderboardService.GetLeaderboardFunc not implemented")
}
