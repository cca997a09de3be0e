package service

import (
	"context"
	"time"

	"ecoquest/internal/domain"
	"ecoquest/internal/logger"
	"ecoquest/internal/util"

	"go.uber.org/zap"
)

// CatalogService exposes the question and community-event catalog. Role
// gating happens in the middleware; the service assumes an already
// authorized caller for mutations.
type CatalogService interface {
	GetAllQuestions(ctx context.Context) ([]*domain.Question, error)
	AddQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error)
	GenerateQuestions(ctx context.Context, topic string, count int) ([]*domain.Question, error)

	GetActiveEvents(ctx context.Context) ([]*domain.CommunityEvent, error)
	AddEvent(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error)
}

type catalogServiceImpl struct {
	questionRepo domain.QuestionRepository
	eventRepo    domain.EventRepository
	generator    domain.QuestionGenerator
}

// NewCatalogService creates a new instance of CatalogService. generator may
// be nil when no drafting backend is configured.
func NewCatalogService(
	questionRepo domain.QuestionRepository,
	eventRepo domain.EventRepository,
	generator domain.QuestionGenerator,
) CatalogService {
	return &catalogServiceImpl{
		questionRepo: questionRepo,
		eventRepo:    eventRepo,
		generator:    generator,
	}
}

func (s *catalogServiceImpl) GetAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	questions, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailableError("Error fetching questions.", err)
	}
	return questions, nil
}

func (s *catalogServiceImpl) AddQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if question.Topic == "" {
		question.Topic = domain.DefaultTopic
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	question.ID = util.NewULID()
	if err := s.questionRepo.Save(ctx, question); err != nil {
		return nil, domain.NewStoreUnavailableError("Error adding question.", err)
	}

	logger.Get().Info("Question added",
		zap.String("questionID", question.ID),
		zap.String("topic", question.Topic))
	return question, nil
}

func (s *catalogServiceImpl) GenerateQuestions(ctx context.Context, topic string, count int) ([]*domain.Question, error) {
	if s.generator == nil {
		return nil, domain.NewError(domain.CodeInternal, "Question drafting is not configured.", nil)
	}
	if count <= 0 {
		count = 3
	}
	return s.generator.GenerateQuestions(ctx, topic, count)
}

func (s *catalogServiceImpl) GetActiveEvents(ctx context.Context) ([]*domain.CommunityEvent, error) {
	events, err := s.eventRepo.GetActive(ctx, time.Now())
	if err != nil {
		return nil, domain.NewStoreUnavailableError("Error fetching community events.", err)
	}
	return events, nil
}

func (s *catalogServiceImpl) AddEvent(ctx context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error) {
	event.IsActive = true
	if err := event.Validate(); err != nil {
		return nil, err
	}

	event.ID = util.NewULID()
	if err := s.eventRepo.Save(ctx, event); err != nil {
		if de, ok := err.(*domain.DomainError); ok && de.Code == domain.CodeConflict {
			return nil, de
		}
		return nil, domain.NewStoreUnavailableError("Error adding community event.", err)
	}

	logger.Get().Info("Community event added",
		zap.String("eventID", event.ID),
		zap.String("title", event.Title))
	return event, nil
}
