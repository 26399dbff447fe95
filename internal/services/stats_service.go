package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/revuhub/admin-backend/internal/models"
	"github.com/revuhub/admin-backend/internal/repositories"
	"go.uber.org/zap"
)

const statsCacheKey = "stats:campaigns"

type CampaignStats struct {
	TotalCampaigns    int64 `json:"total_campaigns"`
	PendingCampaigns  int64 `json:"pending_campaigns"`
	ApprovedCampaigns int64 `json:"approved_campaigns"`
	RejectedCampaigns int64 `json:"rejected_campaigns"`
	ExpiredCampaigns  int64 `json:"expired_campaigns"`
}

// StatsService computes aggregate counts per effective status. The four
// buckets partition the total exactly: each stored-status count is reduced by
// its expired members, which are counted once under expired instead. The SQL
// date comparison matches models.ExpiredOn, so these numbers agree with the
// listings.
type StatsService struct {
	campaigns CampaignStore
	cache     *redis.Client // nil disables caching
	cacheTTL  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewStatsService(campaigns CampaignStore, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) *StatsService {
	return &StatsService{
		campaigns: campaigns,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
		now:       time.Now,
	}
}

func (s *StatsService) Stats(ctx context.Context) (*CampaignStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats CampaignStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(data), s.cacheTTL).Err(); err != nil {
				s.log.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*CampaignStats, error) {
	today := s.now()

	total, err := s.campaigns.Count(ctx, repositories.CampaignFilter{})
	if err != nil {
		return nil, err
	}

	stats := &CampaignStats{TotalCampaigns: total}

	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		st := status
		stored, err := s.campaigns.Count(ctx, repositories.CampaignFilter{Status: &st})
		if err != nil {
			return nil, err
		}
		expiredWithin, err := s.campaigns.CountExpiredWithinStatus(ctx, status, today)
		if err != nil {
			return nil, err
		}

		remaining := stored - expiredWithin
		switch status {
		case models.StatusPending:
			stats.PendingCampaigns = remaining
		case models.StatusApproved:
			stats.ApprovedCampaigns = remaining
		case models.StatusRejected:
			stats.RejectedCampaigns = remaining
		}
		stats.ExpiredCampaigns += expiredWithin
	}

	return stats, nil
}
