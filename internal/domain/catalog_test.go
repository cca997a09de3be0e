package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_Validate(t *testing.T) {
	q := &Question{
		Text: "Which gas do plants absorb during photosynthesis?",
		Answers: []Answer{
			{Text: "Carbon dioxide", IsCorrect: true},
			{Text: "Oxygen", IsCorrect: false},
		},
	}
	assert.NoError(t, q.Validate())

	q.Text = ""
	assert.Error(t, q.Validate())

	q.Text = "restored"
	q.Answers = nil
	assert.Error(t, q.Validate())

	q.Answers = []Answer{{Text: "Oxygen", IsCorrect: false}}
	assert.Error(t, q.Validate(), "a question without a correct answer is unanswerable")

	q.Answers = []Answer{{Text: "", IsCorrect: true}}
	assert.Error(t, q.Validate())
}

func TestCommunityEvent_IsOpen(t *testing.T) {
	now := time.Now()
	event := &CommunityEvent{
		IsActive:  true,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	assert.True(t, event.IsOpen(now))

	event.IsActive = false
	assert.False(t, event.IsOpen(now))

	event.IsActive = true
	assert.True(t, event.IsOpen(event.EndDate), "an event stays open through its end date")
	assert.False(t, event.IsOpen(event.EndDate.Add(time.Second)))
}

func TestCommunityEvent_Validate(t *testing.T) {
	now := time.Now()
	event := &CommunityEvent{
		Title:       "Neighborhood Cleanup Week",
		Description: "Join a local cleanup.",
		XPReward:    50,
		CoinReward:  20,
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
	}
	assert.NoError(t, event.Validate())

	event.Title = ""
	assert.Error(t, event.Validate())

	event.Title = "restored"
	event.XPReward = -1
	assert.Error(t, event.Validate())

	event.XPReward = 50
	event.EndDate = now.Add(-time.Hour)
	assert.Error(t, event.Validate(), "end date before start date is invalid")
}
