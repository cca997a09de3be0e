package dto

import (
	"time"

	"ecoquest/internal/domain"
)

// AnswerPayload is one multiple-choice option in a question body.
type AnswerPayload struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// AddQuestionRequest is the body of POST /questions/add.
// @Description Request body for authoring a quiz question
type AddQuestionRequest struct {
	Question string          `json:"question"`
	Answers  []AnswerPayload `json:"answers"`
	Topic    string          `json:"topic,omitempty"`
}

// GenerateQuestionsRequest is the body of POST /questions/generate.
// @Description Request body for drafting questions with the local model
type GenerateQuestionsRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}

// QuestionResponse is the public shape of a quiz question.
type QuestionResponse struct {
	ID        string          `json:"id"`
	Question  string          `json:"question"`
	Topic     string          `json:"topic"`
	Answers   []AnswerPayload `json:"answers"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AddEventRequest is the body of POST /community-events/add. Dates are
// RFC 3339 timestamps.
// @Description Request body for authoring a community event
type AddEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	XPReward    int64     `json:"xpReward"`
	CoinReward  int64     `json:"coinReward"`
	BadgeReward string    `json:"badgeReward,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// EventResponse is the public shape of a community event.
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	XPReward    int64     `json:"xpReward"`
	CoinReward  int64     `json:"coinReward"`
	BadgeReward string    `json:"badgeReward,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"`
}

// CreatedEventResponse is the body returned by POST /community-events/add.
type CreatedEventResponse struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}

// ToQuestionResponse converts a domain question to its public shape.
func ToQuestionResponse(q *domain.Question) QuestionResponse {
	answers := make([]AnswerPayload, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, AnswerPayload{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return QuestionResponse{
		ID:        q.ID,
		Question:  q.Text,
		Topic:     q.Topic,
		Answers:   answers,
		CreatedAt: q.CreatedAt,
	}
}

// ToEventResponse converts a domain event to its public shape.
func ToEventResponse(e *domain.CommunityEvent) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		XPReward:    e.XPReward,
		CoinReward:  e.CoinReward,
		BadgeReward: e.BadgeReward,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsActive:    e.IsActive,
	}
}
