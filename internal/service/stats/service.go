package stats

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	statsrepo "storefront/internal/repository/stats"
)

type Service struct {
	stats statsrepo.Repository
	now   func() time.Time
}

func New(stats statsrepo.Repository) *Service {
	return &Service{stats: stats, now: time.Now}
}

// Summarize aggregates dashboard counters for the given period: "day",
// "week", "month" or "all" (the default for an empty period).
func (s *Service) Summarize(ctx context.Context, period string) (*statsrepo.Summary, error) {
	since, err := s.periodStart(period)
	if err != nil {
		return nil, err
	}
	return s.stats.Summarize(ctx, since)
}

func (s *Service) periodStart(period string) (time.Time, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "day":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -7), nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case "all", "":
		return time.Time{}, nil
	}
	return time.Time{}, domain.ValidationError(fmt.Sprintf("invalid period %q", period))
}
