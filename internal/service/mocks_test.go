package service

import (
	"context"
	"time"

	"ecoquest/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock type for domain.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) GetByIdentityIDForUpdate(ctx context.Context, identityID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) IncrementXP(ctx context.Context, identityID string, delta int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, identityID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) GetTopByXP(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserProfile), args.Error(1)
}

// MockEventRepository is a mock type for domain.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetActive(ctx context.Context, now time.Time) ([]*domain.CommunityEvent, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CommunityEvent), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.CommunityEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommunityEvent), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, event *domain.CommunityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockQuestionRepository is a mock type for domain.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetAll(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Save(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// MockQuestionGenerator is a mock type for domain.QuestionGenerator
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, topic string, count int) ([]*domain.Question, error) {
	args := m.Called(ctx, topic, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// passthroughTxManager runs the function directly on the given context so
// service tests exercise transactional flows without a database.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
