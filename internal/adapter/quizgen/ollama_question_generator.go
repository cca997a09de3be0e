package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ecoquest/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const questionPromptTemplate = `
You are an environmental-science teacher writing quiz material. Create %d
multiple-choice questions about the topic: "%s".

For each question provide exactly four answer options, exactly one of which
is correct. Respond with a single JSON array where each element has this
shape and nothing else:
{
  "question": "Which gas do plants absorb during photosynthesis?",
  "answers": [
    {"text": "Carbon dioxide", "isCorrect": true},
    {"text": "Oxygen", "isCorrect": false},
    {"text": "Nitrogen", "isCorrect": false},
    {"text": "Methane", "isCorrect": false}
  ]
}
`

type generatedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type generatedQuestion struct {
	Question string            `json:"question"`
	Answers  []generatedAnswer `json:"answers"`
}

// OllamaQuestionGenerator drafts multiple-choice questions with a local
// Ollama model. Implements domain.QuestionGenerator.
type OllamaQuestionGenerator struct {
	llm    *ollama.LLM
	logger *zap.Logger
}

// NewOllamaQuestionGenerator creates a generator backed by the Ollama server
// at serverURL running modelName.
func NewOllamaQuestionGenerator(serverURL, modelName string, logger *zap.Logger) (domain.QuestionGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaQuestionGenerator{llm: llm, logger: logger}, nil
}

// GenerateQuestions asks the model for count draft questions on topic. Drafts
// failing basic shape checks are dropped rather than surfaced as errors.
func (g *OllamaQuestionGenerator) GenerateQuestions(ctx context.Context, topic string, count int) ([]*domain.Question, error) {
	prompt := fmt.Sprintf(questionPromptTemplate, count, topic)

	response, err := g.llm.Call(ctx, prompt, llms.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	payload := extractJSONArray(response)

	var drafts []generatedQuestion
	if err := json.Unmarshal([]byte(payload), &drafts); err != nil {
		g.logger.Error("Failed to parse model response as JSON",
			zap.Error(err),
			zap.String("topic", topic))
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	questions := make([]*domain.Question, 0, len(drafts))
	for _, d := range drafts {
		q := &domain.Question{Text: d.Question, Topic: topic}
		for _, a := range d.Answers {
			q.Answers = append(q.Answers, domain.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		if err := q.Validate(); err != nil {
			g.logger.Warn("Dropping malformed draft question",
				zap.String("topic", topic),
				zap.String("question", d.Question))
			continue
		}
		questions = append(questions, q)
	}

	g.logger.Info("Generated draft questions",
		zap.String("topic", topic),
		zap.Int("requested", count),
		zap.Int("usable", len(questions)))
	return questions, nil
}

// extractJSONArray trims any prose the model wraps around the JSON array.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
