package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"ecoquest/internal/cache"
	"ecoquest/internal/domain"
	"ecoquest/internal/dto"
	"ecoquest/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	leaderboardSize     = 10
	leaderboardCacheTTL = 60 * time.Second
)

// LeaderboardService projects a read-only ranked view from the profile
// store. Slight staleness is acceptable, so entries are cached briefly and
// concurrent recomputation is collapsed.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error)
}

type leaderboardServiceImpl struct {
	profileRepo domain.ProfileRepository
	cache       domain.Cache
	sfGroup     singleflight.Group
}

// NewLeaderboardService creates a new instance of LeaderboardService.
// cacheAdapter may be nil; reads then always hit the store.
func NewLeaderboardService(profileRepo domain.ProfileRepository, cacheAdapter domain.Cache) LeaderboardService {
	return &leaderboardServiceImpl{
		profileRepo: profileRepo,
		cache:       cacheAdapter,
	}
}

func leaderboardCacheKey() string {
	return cache.GenerateCacheKey("leaderboard", "top", strconv.Itoa(leaderboardSize))
}

func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	appLogger := logger.Get()
	key := leaderboardCacheKey()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var entries []dto.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
			// Corrupt cache entry; fall through to a fresh read.
			appLogger.Warn("Discarding unreadable leaderboard cache entry", zap.String("key", key))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			// Cache failures degrade to direct reads.
			appLogger.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		return s.computeAndCache(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return result.([]dto.LeaderboardEntry), nil
}

func (s *leaderboardServiceImpl) computeAndCache(ctx context.Context, key string) ([]dto.LeaderboardEntry, error) {
	appLogger := logger.Get()

	profiles, err := s.profileRepo.GetTopByXP(ctx, leaderboardSize)
	if err != nil {
		return nil, domain.NewStoreUnavailableError("Error fetching leaderboard data.", err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, dto.LeaderboardEntry{
			Email:  p.Email,
			XP:     p.XP,
			Badges: p.Badges,
		})
	}

	if s.cache != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := s.cache.Set(ctx, key, string(payload), leaderboardCacheTTL); err != nil {
				appLogger.Warn("Leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}
