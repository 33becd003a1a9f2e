package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cscruggs10/autointel/internal/common"
	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

const (
	// matchQueryTimeout bounds each corpus query so a stalled database
	// cannot block a matching pass indefinitely
	matchQueryTimeout = 5 * time.Second

	// fuzzyYearWindow is the ± range for the moderate tier
	fuzzyYearWindow = 2

	tierStatsCacheTTL = 5 * time.Minute
)

// HistoricalStatsReader is the corpus query surface the match engine
// needs. Satisfied by repositories.HistoricalSalesRepository.
type HistoricalStatsReader interface {
	StatsByVIN(ctx context.Context, vin string) (*entities.TierStats, error)
	StatsByYearMakeModel(ctx context.Context, year int, make, model string) (*entities.TierStats, error)
	StatsByYearWindow(ctx context.Context, year, window int, make, model string) (*entities.TierStats, error)
	StatsByMakeModel(ctx context.Context, make, model string) (*entities.TierStats, error)
}

// MatchService scores a vehicle against the historical sales corpus.
// Read-only and safe for concurrent use across vehicles.
type MatchService struct {
	corpus HistoricalStatsReader
	cache  common.CacheInterface
}

func NewMatchService(corpus HistoricalStatsReader, cache common.CacheInterface) *MatchService {
	return &MatchService{
		corpus: corpus,
		cache:  cache,
	}
}

// matchTier is one rung of the fallback ladder. Tiers are evaluated in
// order and the first one with a hit wins.
type matchTier struct {
	matchType string
	strength  constants.MatchStrength
	lookup    func(ctx context.Context, v *entities.Vehicle) (*entities.TierStats, error)
}

func (s *MatchService) tiers() []matchTier {
	return []matchTier{
		{
			matchType: constants.MatchTypeExactVIN,
			strength:  constants.MatchStrengthExact,
			lookup: func(ctx context.Context, v *entities.Vehicle) (*entities.TierStats, error) {
				return s.corpus.StatsByVIN(ctx, v.VIN)
			},
		},
		{
			matchType: constants.MatchTypeYearMakeModel,
			strength:  constants.MatchStrengthStrong,
			lookup: func(ctx context.Context, v *entities.Vehicle) (*entities.TierStats, error) {
				key := statsCacheKey("ymm", *v.Year, *v.Make, *v.Model)
				return s.cachedStats(key, func() (*entities.TierStats, error) {
					return s.corpus.StatsByYearMakeModel(ctx, *v.Year, *v.Make, *v.Model)
				})
			},
		},
		{
			matchType: constants.MatchTypeYearWindow,
			strength:  constants.MatchStrengthModerate,
			lookup: func(ctx context.Context, v *entities.Vehicle) (*entities.TierStats, error) {
				key := statsCacheKey("window", *v.Year, *v.Make, *v.Model)
				return s.cachedStats(key, func() (*entities.TierStats, error) {
					return s.corpus.StatsByYearWindow(ctx, *v.Year, fuzzyYearWindow, *v.Make, *v.Model)
				})
			},
		},
		{
			matchType: constants.MatchTypeMakeModel,
			strength:  constants.MatchStrengthWeak,
			lookup: func(ctx context.Context, v *entities.Vehicle) (*entities.TierStats, error) {
				key := statsCacheKey("mm", 0, *v.Make, *v.Model)
				return s.cachedStats(key, func() (*entities.TierStats, error) {
					return s.corpus.StatsByMakeModel(ctx, *v.Make, *v.Model)
				})
			},
		},
	}
}

// Match evaluates the tier ladder for one vehicle. A vehicle missing
// year, make or model cannot be matched on partial identity and
// short-circuits to no-match without touching the corpus. Storage
// failures are returned to the caller; a matching pass must abort rather
// than record a partial outcome.
func (s *MatchService) Match(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error) {

	if vehicle.Year == nil || vehicle.Make == nil || vehicle.Model == nil {
		return noMatchResult(constants.MsgVehicleIncomplete), nil
	}

	for _, tier := range s.tiers() {
		queryCtx, cancel := context.WithTimeout(ctx, matchQueryTimeout)
		stats, err := tier.lookup(queryCtx, vehicle)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("match tier %s: %w", tier.matchType, err)
		}

		if stats.MatchCount > 0 {
			return buildMatchResult(tier, stats), nil
		}
	}

	return noMatchResult(constants.MsgMatchedNoHistory), nil
}

func buildMatchResult(tier matchTier, stats *entities.TierStats) *dtos.MatchResult {
	result := &dtos.MatchResult{
		Matched:       true,
		MatchCount:    stats.MatchCount,
		MatchStrength: tier.strength,
		MatchType:     tier.matchType,
		LastSoldDate:  stats.LastSoldDate,
		Message: fmt.Sprintf("%d historical sale(s), %s match",
			stats.MatchCount, tier.strength),
	}
	if stats.AvgDaysToSell != nil {
		result.AvgDaysToSell = *stats.AvgDaysToSell
		result.AvgDaysToSellRounded = int(math.Round(*stats.AvgDaysToSell))
	}
	return result
}

func noMatchResult(message string) *dtos.MatchResult {
	return &dtos.MatchResult{
		Matched:       false,
		MatchStrength: constants.MatchStrengthNone,
		MatchType:     constants.MatchTypeNone,
		Message:       message,
	}
}

// cachedStats wraps a tier lookup in the cache. Runlists repeat the same
// make/model dozens of times, so the year/make/model-keyed tiers hit the
// cache far more often than the corpus.
func (s *MatchService) cachedStats(key string, loader func() (*entities.TierStats, error)) (*entities.TierStats, error) {
	if s.cache == nil {
		return loader()
	}

	val, err := s.cache.GetOrSet(key, tierStatsCacheTTL, func() (any, error) {
		return loader()
	})
	if err != nil {
		return nil, err
	}

	if stats, ok := val.(*entities.TierStats); ok {
		return stats, nil
	}

	// The Redis cache round-trips values through JSON
	data, err := json.Marshal(val)
	if err != nil {
		return loader()
	}
	var stats entities.TierStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return loader()
	}
	return &stats, nil
}

func statsCacheKey(tier string, year int, make, model string) string {
	return fmt.Sprintf("match:%s:%d:%s:%s",
		tier, year, strings.ToLower(make), strings.ToLower(model))
}
