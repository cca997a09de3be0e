package handler

import (
	"ecoquest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler serves the read-only leaderboard projection.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard returns the top profiles ordered by XP.
// @Summary Get Leaderboard
// @Description Returns the top ten profiles by XP. Served from cache when fresh.
// @Tags leaderboard
// @Produce json
// @Success 200 {array} dto.LeaderboardEntry
// @Failure 500 {object} middleware.ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := h.leaderboardService.GetLeaderboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
