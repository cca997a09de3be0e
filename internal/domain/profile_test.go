package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserProfile_WelcomeDefaults(t *testing.T) {
	p := NewUserProfile("google-sub-123", "a@example.com", RoleStudent)

	assert.Equal(t, int64(WelcomeBonusXP), p.XP)
	assert.Equal(t, int64(DefaultStartCoin), p.Coins)
	assert.Equal(t, DefaultRank, p.Rank)
	assert.Equal(t, []string{WelcomeBadge}, p.Badges)
	assert.Empty(t, p.Achievements)
	assert.Empty(t, p.CompletedEvents)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestUserProfile_IsTeacher(t *testing.T) {
	assert.False(t, NewUserProfile("a", "a@example.com", RoleStudent).IsTeacher())
	assert.True(t, NewUserProfile("b", "b@example.com", RoleTeacher).IsTeacher())
}

func TestUserProfile_Guards(t *testing.T) {
	p := NewUserProfile("a", "a@example.com", RoleStudent)
	p.CompletedEvents = []string{"event-1"}
	p.Achievements = []string{CommunityContributorAchievement}

	assert.True(t, p.HasCompletedEvent("event-1"))
	assert.False(t, p.HasCompletedEvent("event-2"))
	assert.True(t, p.HasBadge(WelcomeBadge))
	assert.False(t, p.HasBadge("Litter Fighter"))
	assert.True(t, p.HasAchievement(CommunityContributorAchievement))
	assert.False(t, p.HasAchievement("Marathon Runner"))
}

func TestUserProfile_Validate(t *testing.T) {
	p := NewUserProfile("a", "a@example.com", RoleStudent)
	assert.NoError(t, p.Validate())

	p.IdentityID = ""
	assert.Error(t, p.Validate())

	p = NewUserProfile("a", "", RoleStudent)
	assert.Error(t, p.Validate())

	p = NewUserProfile("a", "a@example.com", Role("admin"))
	assert.Error(t, p.Validate())
}
