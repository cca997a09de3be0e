// Package seedmodels defines the JSON shapes of the seed data file.
package seedmodels

import "time"

type SeedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type SeedQuestion struct {
	Question string       `json:"question"`
	Topic    string       `json:"topic"`
	Answers  []SeedAnswer `json:"answers"`
}

type SeedEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	XPReward    int64     `json:"xpReward"`
	CoinReward  int64     `json:"coinReward"`
	BadgeReward string    `json:"badgeReward"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

type SeedData struct {
	Questions []SeedQuestion `json:"questions"`
	Events    []SeedEvent    `json:"events"`
}
