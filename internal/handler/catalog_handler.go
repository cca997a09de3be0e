package handler

import (
	"ecoquest/internal/domain"
	"ecoquest/internal/dto"
	"ecoquest/internal/logger"
	"ecoquest/internal/middleware"
	"ecoquest/internal/service"
	"ecoquest/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles question and community event catalog requests.
// Authoring routes sit behind the teacher-role middleware; reads are
// public.
type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validation.Validator
}

func NewCatalogHandler(catalogService service.CatalogService, validator *validation.Validator) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

// GetQuestions returns every question in the catalog.
// @Summary List Questions
// @Description Returns all quiz questions, oldest first.
// @Tags questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *CatalogHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.catalogService.GetAllQuestions(c.Context())
	if err != nil {
		return err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.ToQuestionResponse(q))
	}
	return c.JSON(responses)
}

// AddQuestion stores a teacher-authored question.
// @Summary Add a Question
// @Description Stores a new quiz question. Requires the teacher role.
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AddQuestionRequest true "Question to add"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid question"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Teacher role required"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/add [post]
func (h *CatalogHandler) AddQuestion(c *fiber.Ctx) error {
	appLogger := logger.Get()
	var req dto.AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse add question body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if verrs := h.validator.ValidateAddQuestionRequest(&req); verrs != nil {
		return verrs
	}

	answers := make([]domain.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	question, err := h.catalogService.AddQuestion(c.Context(), &domain.Question{
		Text:    req.Question,
		Topic:   req.Topic,
		Answers: answers,
	})
	if err != nil {
		return err
	}

	appLogger.Info("Question added", zap.String("questionID", question.ID), zap.String("topic", question.Topic))
	return c.Status(fiber.StatusCreated).JSON(dto.ToQuestionResponse(question))
}

// GenerateQuestions drafts questions with the local language model.
// @Summary Generate Question Drafts
// @Description Drafts quiz questions for a topic with the configured local model. Drafts are returned for review, not stored. Requires the teacher role.
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateQuestionsRequest true "Topic and draft count"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid request"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Teacher role required"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/generate [post]
func (h *CatalogHandler) GenerateQuestions(c *fiber.Ctx) error {
	appLogger := logger.Get()
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse generate questions body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if verrs := h.validator.ValidateGenerateQuestionsRequest(&req); verrs != nil {
		return verrs
	}

	drafts, err := h.catalogService.GenerateQuestions(c.Context(), req.Topic, req.Count)
	if err != nil {
		return err
	}

	responses := make([]dto.QuestionResponse, 0, len(drafts))
	for _, q := range drafts {
		responses = append(responses, dto.ToQuestionResponse(q))
	}
	return c.JSON(responses)
}

// GetActiveEvents returns events still open for completion.
// @Summary List Active Community Events
// @Description Returns events that are active and have not ended, soonest ending first.
// @Tags community-events
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /community-events [get]
func (h *CatalogHandler) GetActiveEvents(c *fiber.Ctx) error {
	events, err := h.catalogService.GetActiveEvents(c.Context())
	if err != nil {
		return err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.ToEventResponse(e))
	}
	return c.JSON(responses)
}

// AddEvent stores a teacher-authored community event.
// @Summary Add a Community Event
// @Description Stores a new community event, active immediately. Requires the teacher role.
// @Tags community-events
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AddEventRequest true "Event to add"
// @Success 201 {object} dto.CreatedEventResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid event"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Teacher role required"
// @Failure 409 {object} middleware.ErrorResponse "Duplicate title"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /community-events/add [post]
func (h *CatalogHandler) AddEvent(c *fiber.Ctx) error {
	appLogger := logger.Get()
	var req dto.AddEventRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse add event body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if verrs := h.validator.ValidateAddEventRequest(&req); verrs != nil {
		return verrs
	}

	event, err := h.catalogService.AddEvent(c.Context(), &domain.CommunityEvent{
		Title:       req.Title,
		Description: req.Description,
		XPReward:    req.XPReward,
		CoinReward:  req.CoinReward,
		BadgeReward: req.BadgeReward,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return err
	}

	appLogger.Info("Community event added", zap.String("eventID", event.ID), zap.String("title", event.Title))
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedEventResponse{
		Message: "Event created successfully.",
		Event:   dto.ToEventResponse(event),
	})
}
