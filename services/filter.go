package services

import (
	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/utils"
)

// Filter narrows raw orders down to the platinum prices that match the
// given criteria.
type Filter struct {
	logger *utils.Logger
}

// NewFilter creates a Filter with the given logger.
func NewFilter(logger *utils.Logger) *Filter {
	return &Filter{logger: logger}
}

// Apply returns the prices of all orders matching the criteria, in the
// same relative order as the input. An empty result is valid here; the
// calculator rejects emptiness.
func (f *Filter) Apply(orders []models.RawOrder, criteria models.FilterCriteria) []int {
	prices := make([]int, 0, len(orders))
	for i := range orders {
		if matches(&orders[i], criteria) {
			prices = append(prices, orders[i].Price)
		}
	}

	f.logger.Debug("[filter] %d orders -> %d matching (platform=%s kind=%s since=%s)",
		len(orders), len(prices), criteria.Platform, criteria.Kind,
		criteria.Earliest.Format("2006-01-02 15:04"))
	return prices
}

// matches applies the conjunctive order predicate: platform, order
// kind, visibility, recency, and the optional rank or refinement
// constraint.
func matches(order *models.RawOrder, c models.FilterCriteria) bool {
	if order.Platform != c.Platform {
		return false
	}
	if order.Kind != c.Kind {
		return false
	}
	if !order.Visible {
		return false
	}
	if order.LastUpdate.Before(c.Earliest) {
		return false
	}
	if c.Rank != nil {
		if order.Rank == nil || *order.Rank != *c.Rank {
			return false
		}
	}
	if c.Refinement != nil {
		if order.Refinement == nil || *order.Refinement != *c.Refinement {
			return false
		}
	}
	return true
}
