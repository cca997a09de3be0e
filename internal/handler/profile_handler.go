package handler

import (
	"ecoquest/internal/dto"
	"ecoquest/internal/logger"
	"ecoquest/internal/middleware"
	"ecoquest/internal/service"
	"ecoquest/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler handles profile lifecycle and reward-granting requests.
// All routes require a verified identity; the auth middleware stores the
// identity subject and email in ctx locals before these run.
type ProfileHandler struct {
	profileService service.ProfileService
	validator      *validation.Validator
}

func NewProfileHandler(profileService service.ProfileService, validator *validation.Validator) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

func identityFromLocals(c *fiber.Ctx) (identityID, email string, err error) {
	identityID, ok := c.Locals(middleware.IdentityIDKey).(string)
	if !ok || identityID == "" {
		return "", "", c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_IDENTITY_CONTEXT", Message: "Identity not found in request context", Status: fiber.StatusUnauthorized,
		})
	}
	email, _ = c.Locals(middleware.EmailKey).(string)
	return identityID, email, nil
}

// GetMyProfile retrieves the profile of the authenticated identity.
// @Summary Get My Profile
// @Description Retrieves the progression record of the logged-in user.
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Profile not found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	identityID, _, err := identityFromLocals(c)
	if err != nil || identityID == "" {
		return err
	}

	profile, err := h.profileService.GetProfile(c.Context(), identityID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ToUserProfileResponse(profile))
}

// CreateProfile creates the progression record on first login.
// @Summary Create My Profile
// @Description Creates the progression record for the authenticated identity. Returns the existing record when one already exists. A valid teacher code in the body elevates the new profile to the teacher role.
// @Tags profile
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateProfileRequest false "Optional teacher code"
// @Success 200 {object} dto.UserProfileResponse "Profile already existed"
// @Success 201 {object} dto.UserProfileResponse "Profile created"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /profile/create [post]
func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	appLogger := logger.Get()
	identityID, email, err := identityFromLocals(c)
	if err != nil || identityID == "" {
		return err
	}

	// An empty body is fine; only the teacher code is optional input.
	var req dto.CreateProfileRequest
	if len(c.Body()) > 0 {
		if parseErr := c.BodyParser(&req); parseErr != nil {
			appLogger.Warn("Failed to parse profile creation body", zap.Error(parseErr))
			return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
				Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
			})
		}
	}

	profile, created, err := h.profileService.CreateProfile(c.Context(), identityID, email, req.TeacherCode)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
		appLogger.Info("Profile created", zap.String("identityID", identityID), zap.String("role", string(profile.Role)))
	}
	return c.Status(status).JSON(dto.ToUserProfileResponse(profile))
}

// CompleteQuiz grants XP for one finished quiz session.
// @Summary Complete a Quiz
// @Description Adds the submitted score to the user's XP. Creates the progression record if it does not exist yet. Not idempotent: every call grants the stated XP.
// @Tags profile
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CompleteQuizRequest true "Quiz score"
// @Success 200 {object} dto.QuizCompletionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid score"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /profile/quiz/complete [post]
func (h *ProfileHandler) CompleteQuiz(c *fiber.Ctx) error {
	appLogger := logger.Get()
	identityID, email, err := identityFromLocals(c)
	if err != nil || identityID == "" {
		return err
	}

	var req dto.CompleteQuizRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		appLogger.Warn("Failed to parse quiz completion body", zap.Error(parseErr))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if verrs := h.validator.ValidateCompleteQuizRequest(&req); verrs != nil {
		return verrs
	}

	profile, message, err := h.profileService.CompleteQuiz(c.Context(), identityID, email, req.Score)
	if err != nil {
		return err
	}

	return c.JSON(dto.QuizCompletionResponse{
		Message:     message,
		UserProfile: dto.ToUserProfileResponse(profile),
	})
}

// CompleteEvent grants a community event's rewards exactly once.
// @Summary Complete a Community Event
// @Description Marks the event completed for the user and grants its XP, coins and badge. Completing the same event twice is rejected.
// @Tags community-events
// @Security ApiKeyAuth
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} dto.EventCompletionResponse
// @Failure 400 {object} middleware.ErrorResponse "Already completed or invalid ID"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Event or profile not found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /community-events/complete/{eventId} [post]
func (h *ProfileHandler) CompleteEvent(c *fiber.Ctx) error {
	appLogger := logger.Get()
	identityID, _, err := identityFromLocals(c)
	if err != nil || identityID == "" {
		return err
	}

	eventID := c.Params("eventId")
	if verrs := h.validator.ValidateEventID(eventID); verrs != nil {
		return verrs
	}

	profile, newBadges, message, err := h.profileService.CompleteEvent(c.Context(), identityID, eventID)
	if err != nil {
		return err
	}

	appLogger.Info("Event completed",
		zap.String("identityID", identityID),
		zap.String("eventID", eventID),
		zap.Strings("newBadges", newBadges))

	return c.JSON(dto.EventCompletionResponse{
		Message:          message,
		UserProfile:      dto.ToUserProfileResponse(profile),
		NewBadgesAwarded: newBadges,
	})
}
