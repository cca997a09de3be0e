package dto

import (
	"time"

	"ecoquest/internal/domain"
)

// CreateProfileRequest is the body of POST /profile/create. The optional
// teacher code elevates the new profile to the teacher role exactly once.
// @Description Request body for initial profile creation
type CreateProfileRequest struct {
	TeacherCode string `json:"teacherCode,omitempty"`
}

// CompleteQuizRequest is the body of POST /profile/quiz/complete. The score
// is trusted as submitted; see the documented trust boundary.
// @Description Request body for quiz completion
type CompleteQuizRequest struct {
	Score int64 `json:"score"`
}

// UserProfileResponse is the public shape of a progression record.
type UserProfileResponse struct {
	ID              string    `json:"id"`
	IdentityID      string    `json:"identityId"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	XP              int64     `json:"xp"`
	Coins           int64     `json:"coins"`
	Rank            int       `json:"rank"`
	Badges          []string  `json:"badges"`
	Achievements    []string  `json:"achievements"`
	CompletedEvents []string  `json:"completedEvents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// QuizCompletionResponse is the body returned by POST /profile/quiz/complete.
type QuizCompletionResponse struct {
	Message     string              `json:"message"`
	UserProfile UserProfileResponse `json:"userProfile"`
}

// EventCompletionResponse is the body returned by
// POST /community-events/complete/:eventId.
type EventCompletionResponse struct {
	Message          string              `json:"message"`
	UserProfile      UserProfileResponse `json:"userProfile"`
	NewBadgesAwarded []string            `json:"newBadgesAwarded"`
}

// LeaderboardEntry is one row of the public leaderboard projection.
type LeaderboardEntry struct {
	Email  string   `json:"email"`
	XP     int64    `json:"xp"`
	Badges []string `json:"badges"`
}

// ToUserProfileResponse converts a domain profile to its public shape.
func ToUserProfileResponse(p *domain.UserProfile) UserProfileResponse {
	return UserProfileResponse{
		ID:              p.ID,
		IdentityID:      p.IdentityID,
		Email:           p.Email,
		Role:            string(p.Role),
		XP:              p.XP,
		Coins:           p.Coins,
		Rank:            p.Rank,
		Badges:          p.Badges,
		Achievements:    p.Achievements,
		CompletedEvents: p.CompletedEvents,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
