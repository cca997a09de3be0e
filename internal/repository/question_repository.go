package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoquest/internal/domain"
	"ecoquest/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new question repository over db.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	answers := make([]domain.Answer, 0, len(m.Answers))
	for _, a := range m.Answers {
		answers = append(answers, domain.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return &domain.Question{
		ID:        m.ID,
		Text:      m.Text,
		Topic:     m.Topic,
		Answers:   answers,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	answers := make(models.AnswerList, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, models.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return &models.Question{
		ID:        q.ID,
		Text:      q.Text,
		Topic:     q.Topic,
		Answers:   answers,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// GetAll returns every question, oldest first.
func (r *sqlxQuestionRepository) GetAll(ctx context.Context) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	query := `SELECT id, text, topic, answers, created_at, updated_at FROM questions ORDER BY created_at ASC, id ASC`

	var rows []models.Question
	if err := sqlx.SelectContext(ctx, exec, &rows, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.Question{}, nil
		}
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// Save persists a new question.
func (r *sqlxQuestionRepository) Save(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainQuestion(question)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	// Bind names must match the model db tags exactly; sqlx resolves them
	// case-sensitively.
	query := `INSERT INTO questions (id, text, topic, answers, created_at, updated_at)
	          VALUES (:ID, :TEXT, :TOPIC, :ANSWERS, :CREATED_AT, :UPDATED_AT)`

	if _, err := sqlx.NamedExecContext(ctx, exec, query, m); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}

	question.CreatedAt = m.CreatedAt
	question.UpdatedAt = m.UpdatedAt
	return nil
}
