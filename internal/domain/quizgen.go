package domain

import "context"

// QuestionGenerator drafts multiple-choice questions for teacher review.
// Drafts are never persisted directly; a teacher submits the ones worth
// keeping through the regular authoring path.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic string, count int) ([]*Question, error)
}
