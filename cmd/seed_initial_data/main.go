package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ecoquest/cmd/seed_initial_data/internal/seedmodels"
	"ecoquest/internal/config"
	"ecoquest/internal/database"
	"ecoquest/internal/domain"
	"ecoquest/internal/logger"
	"ecoquest/internal/repository"
	"ecoquest/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_catalog.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seed seedmodels.SeedData
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Seed data loaded",
		zap.Int("questions", len(seed.Questions)),
		zap.Int("events", len(seed.Events)))

	questionRepo := repository.NewSQLXQuestionRepository(db)
	eventRepo := repository.NewSQLXEventRepository(db)

	seedQuestions(ctx, log, questionRepo, seed.Questions)
	seedEvents(ctx, log, eventRepo, seed.Events)

	log.Info("Initial data seeding process completed.")
}

func seedQuestions(ctx context.Context, log *zap.Logger, repo domain.QuestionRepository, seeds []seedmodels.SeedQuestion) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		log.Error("Failed to read existing questions, skipping question seeding", zap.Error(err))
		return
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[q.Text] = true
	}

	for _, sq := range seeds {
		if seen[sq.Question] {
			log.Info("Question already present, skipping", zap.String("question", sq.Question))
			continue
		}
		answers := make([]domain.Answer, 0, len(sq.Answers))
		for _, a := range sq.Answers {
			answers = append(answers, domain.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		question := &domain.Question{
			ID:      util.NewULID(),
			Text:    sq.Question,
			Topic:   sq.Topic,
			Answers: answers,
		}
		if question.Topic == "" {
			question.Topic = domain.DefaultTopic
		}
		if err := question.Validate(); err != nil {
			log.Error("Invalid seed question, skipping", zap.String("question", sq.Question), zap.Error(err))
			continue
		}
		if err := repo.Save(ctx, question); err != nil {
			log.Error("Failed to save seed question", zap.String("question", sq.Question), zap.Error(err))
			continue
		}
		log.Info("Seeded question", zap.String("id", question.ID), zap.String("topic", question.Topic))
	}
}

func seedEvents(ctx context.Context, log *zap.Logger, repo domain.EventRepository, seeds []seedmodels.SeedEvent) {
	for _, se := range seeds {
		event := &domain.CommunityEvent{
			ID:          util.NewULID(),
			Title:       se.Title,
			Description: se.Description,
			XPReward:    se.XPReward,
			CoinReward:  se.CoinReward,
			BadgeReward: se.BadgeReward,
			StartDate:   se.StartDate,
			EndDate:     se.EndDate,
			IsActive:    true,
		}
		if err := event.Validate(); err != nil {
			log.Error("Invalid seed event, skipping", zap.String("title", se.Title), zap.Error(err))
			continue
		}
		if err := repo.Save(ctx, event); err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.CodeConflict {
				log.Info("Event already present, skipping", zap.String("title", se.Title))
				continue
			}
			log.Error("Failed to save seed event", zap.String("title", se.Title), zap.Error(err))
			continue
		}
		log.Info("Seeded event", zap.String("id", event.ID), zap.String("title", event.Title))
	}
}
