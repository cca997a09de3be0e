package validation

import (
	"regexp"
	"strings"

	"ecoquest/internal/domain"
	"ecoquest/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAddQuestionRequest validates a question authoring request.
func (v *Validator) ValidateAddQuestionRequest(req *dto.AddQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Question) == "" {
		errors = append(errors, domain.NewValidationError("question", "question text is required"))
	} else if len(req.Question) > 2000 {
		errors = append(errors, domain.NewValidationError("question", "question text must be at most 2000 characters"))
	}

	if len(req.Answers) < 2 {
		errors = append(errors, domain.NewValidationError("answers", "at least two answers are required"))
	} else {
		hasCorrect := false
		for _, a := range req.Answers {
			if strings.TrimSpace(a.Text) == "" {
				errors = append(errors, domain.NewValidationError("answers", "answer text is required"))
				break
			}
			if a.IsCorrect {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			errors = append(errors, domain.NewValidationError("answers", "at least one answer must be marked correct"))
		}
	}

	if req.Topic != "" && !isValidTopic(req.Topic) {
		errors = append(errors, domain.NewValidationError("topic", "topic contains invalid characters"))
	}

	return errors
}

// ValidateGenerateQuestionsRequest validates a question drafting request.
func (v *Validator) ValidateGenerateQuestionsRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewValidationError("topic", "topic is required"))
	} else if !isValidTopic(req.Topic) {
		errors = append(errors, domain.NewValidationError("topic", "topic contains invalid characters"))
	}

	// Zero means unset; the catalog service substitutes its default.
	if req.Count < 0 || req.Count > 10 {
		errors = append(errors, domain.NewValidationError("count", "count must be between 0 and 10"))
	}

	return errors
}

// ValidateAddEventRequest validates a community event authoring request.
func (v *Validator) ValidateAddEventRequest(req *dto.AddEventRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewValidationError("title", "title is required"))
	}
	if strings.TrimSpace(req.Description) == "" {
		errors = append(errors, domain.NewValidationError("description", "description is required"))
	}
	if req.XPReward < 0 {
		errors = append(errors, domain.NewValidationError("xpReward", "xpReward must be >= 0"))
	}
	if req.CoinReward < 0 {
		errors = append(errors, domain.NewValidationError("coinReward", "coinReward must be >= 0"))
	}
	if req.StartDate.IsZero() {
		errors = append(errors, domain.NewValidationError("startDate", "startDate is required"))
	}
	if req.EndDate.IsZero() {
		errors = append(errors, domain.NewValidationError("endDate", "endDate is required"))
	} else if !req.StartDate.IsZero() && req.EndDate.Before(req.StartDate) {
		errors = append(errors, domain.NewValidationError("endDate", "endDate must not be before startDate"))
	}

	return errors
}

// ValidateCompleteQuizRequest validates a quiz completion submission. The
// score itself is trusted as submitted; only its shape is checked.
func (v *Validator) ValidateCompleteQuizRequest(req *dto.CompleteQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Score < 0 {
		errors = append(errors, domain.NewValidationError("score", "score must be a non-negative integer"))
	}

	return errors
}

// ValidateEventID validates an event identifier path parameter.
func (v *Validator) ValidateEventID(eventID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(eventID) == "" {
		errors = append(errors, domain.NewValidationError("eventId", "eventId is required"))
	} else if !isValidULID(eventID) {
		errors = append(errors, domain.NewValidationError("eventId", "eventId is not a valid identifier"))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidTopic allows letters, digits, spaces and a little punctuation.
func isValidTopic(s string) bool {
	if len(s) == 0 || len(s) > 100 {
		return false
	}
	validTopic := regexp.MustCompile(`^[a-zA-Z0-9 _&,'-]+$`)
	return validTopic.MatchString(s)
}
