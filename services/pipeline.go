package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Eutropios/WarMAC/config"
	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/utils"
)

// OrderSource supplies raw orders for an item. Satisfied by the market
// client; tests swap in a stub.
type OrderSource interface {
	FetchOrders(ctx context.Context, item string) (models.ItemInfo, []models.RawOrder, error)
}

// AverageRequest carries the validated user constraints for one
// statistic computation.
type AverageRequest struct {
	Statistic models.StatisticKind
	Platform  models.Platform
	TimeRange int
	MaxRank   bool
	Radiant   bool
	Buyers    bool
}

// ValidateTimeRange rejects time ranges outside the accepted window.
func ValidateTimeRange(days int) error {
	if days < config.MinTimeRange || days > config.MaxTimeRange {
		return fmt.Errorf("time range must be in range [%d, %d], got %d",
			config.MinTimeRange, config.MaxTimeRange, days)
	}
	return nil
}

// Pipeline runs fetch, filter, compute, and summarize for one item.
type Pipeline struct {
	source OrderSource
	filter *Filter
	logger *utils.Logger
	now    func() time.Time
}

// NewPipeline creates a Pipeline over the given order source.
func NewPipeline(source OrderSource, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		source: source,
		filter: NewFilter(logger),
		logger: logger,
		now:    time.Now,
	}
}

// BuildCriteria derives the filter constraints from the request and the
// fetched item metadata. The rank constraint applies only to mods and
// arcanes, the refinement constraint only to relics; an item is never
// both, so the two stay mutually exclusive.
func BuildCriteria(info models.ItemInfo, req AverageRequest, now time.Time) models.FilterCriteria {
	kind := models.OrderSell
	if req.Buyers {
		kind = models.OrderBuy
	}

	criteria := models.FilterCriteria{
		Platform: req.Platform,
		Kind:     kind,
		Earliest: now.AddDate(0, 0, -req.TimeRange),
	}

	if info.IsModOrArc {
		rank := 0
		if req.MaxRank {
			rank = info.MaxRank
		}
		criteria.Rank = &rank
	} else if info.IsRelic {
		ref := models.RefinementIntact
		if req.Radiant {
			ref = models.RefinementRadiant
		}
		criteria.Refinement = &ref
	}

	return criteria
}

// Run fetches the item's orders and reduces them to a StatisticResult.
// The fetched raw orders are returned alongside the result so callers
// can snapshot them; they are not retained here.
func (p *Pipeline) Run(ctx context.Context, item string, req AverageRequest) (models.StatisticResult, []models.RawOrder, error) {
	if err := ValidateTimeRange(req.TimeRange); err != nil {
		return models.StatisticResult{}, nil, err
	}

	info, orders, err := p.source.FetchOrders(ctx, item)
	if err != nil {
		return models.StatisticResult{}, nil, err
	}

	criteria := BuildCriteria(info, req, p.now().UTC())
	prices := p.filter.Apply(orders, criteria)

	value, err := Compute(prices, req.Statistic)
	if err != nil {
		return models.StatisticResult{}, orders, err
	}

	result := Summarize(info.Name, prices, value, req.Statistic, req.TimeRange)
	p.logger.Debug("[pipeline] %s: %s=%s over %d orders",
		info.Slug, req.Statistic, FormatValue(value, req.Statistic), result.Count)
	return result, orders, nil
}
