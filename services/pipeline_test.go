package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/utils"
)

// stubSource returns canned orders without touching the network.
type stubSource struct {
	info   models.ItemInfo
	orders []models.RawOrder
	err    error
}

func (s *stubSource) FetchOrders(ctx context.Context, item string) (models.ItemInfo, []models.RawOrder, error) {
	return s.info, s.orders, s.err
}

func sellOrder(price, daysOld int) models.RawOrder {
	return models.RawOrder{
		Platform:   models.PlatformPC,
		Kind:       models.OrderSell,
		Visible:    true,
		Price:      price,
		LastUpdate: time.Now().UTC().AddDate(0, 0, -daysOld),
	}
}

func baseRequest() AverageRequest {
	return AverageRequest{
		Statistic: models.StatMedian,
		Platform:  models.PlatformPC,
		TimeRange: 10,
	}
}

func TestPipelineRunEndToEnd(t *testing.T) {
	source := &stubSource{
		info: models.ItemInfo{Name: "Bite", Slug: "bite", MaxRank: -1},
		orders: []models.RawOrder{
			sellOrder(4, 1), sellOrder(5, 2), sellOrder(5, 3), sellOrder(30, 4),
		},
	}
	p := NewPipeline(source, utils.NewLogger(false))

	result, orders, err := p.Run(context.Background(), "bite", baseRequest())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(orders) != 4 {
		t.Errorf("expected 4 raw orders back, got %d", len(orders))
	}
	if result.Value != 5.0 || result.MinPrice != 4 || result.MaxPrice != 30 || result.Count != 4 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestPipelineRunNoMatches(t *testing.T) {
	source := &stubSource{
		info: models.ItemInfo{Name: "Bite", Slug: "bite", MaxRank: -1},
		orders: []models.RawOrder{
			sellOrder(10, 45), // too old for the 10 day window
		},
	}
	p := NewPipeline(source, utils.NewLogger(false))

	_, _, err := p.Run(context.Background(), "bite", baseRequest())
	if !errors.Is(err, ErrNoListings) {
		t.Errorf("expected ErrNoListings, got %v", err)
	}
}

func TestPipelineRunPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	p := NewPipeline(&stubSource{err: fetchErr}, utils.NewLogger(false))

	_, _, err := p.Run(context.Background(), "bite", baseRequest())
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestPipelineRunRejectsBadTimeRange(t *testing.T) {
	p := NewPipeline(&stubSource{}, utils.NewLogger(false))

	for _, days := range []int{0, -1, 61} {
		req := baseRequest()
		req.TimeRange = days
		if _, _, err := p.Run(context.Background(), "bite", req); err == nil {
			t.Errorf("timerange %d: expected validation error", days)
		}
	}
}

func TestBuildCriteriaModRanks(t *testing.T) {
	now := time.Now().UTC()
	info := models.ItemInfo{Name: "Vitality", IsModOrArc: true, MaxRank: 10}

	c := BuildCriteria(info, baseRequest(), now)
	if c.Rank == nil || *c.Rank != 0 {
		t.Errorf("unranked request: got rank %v, want 0", c.Rank)
	}
	if c.Refinement != nil {
		t.Error("mod criteria must not carry a refinement constraint")
	}

	req := baseRequest()
	req.MaxRank = true
	c = BuildCriteria(info, req, now)
	if c.Rank == nil || *c.Rank != 10 {
		t.Errorf("maxrank request: got rank %v, want 10", c.Rank)
	}
}

func TestBuildCriteriaRelicRefinement(t *testing.T) {
	now := time.Now().UTC()
	info := models.ItemInfo{Name: "Lith G1 Relic", IsRelic: true, MaxRank: -1}

	c := BuildCriteria(info, baseRequest(), now)
	if c.Refinement == nil || *c.Refinement != models.RefinementIntact {
		t.Errorf("default relic request: got refinement %v, want intact", c.Refinement)
	}
	if c.Rank != nil {
		t.Error("relic criteria must not carry a rank constraint")
	}

	req := baseRequest()
	req.Radiant = true
	c = BuildCriteria(info, req, now)
	if c.Refinement == nil || *c.Refinement != models.RefinementRadiant {
		t.Errorf("radiant request: got refinement %v, want radiant", c.Refinement)
	}
}

func TestBuildCriteriaPlainItem(t *testing.T) {
	now := time.Now().UTC()
	info := models.ItemInfo{Name: "Bite", MaxRank: -1}

	req := baseRequest()
	req.Buyers = true
	c := BuildCriteria(info, req, now)

	if c.Rank != nil || c.Refinement != nil {
		t.Error("plain item criteria must carry neither rank nor refinement")
	}
	if c.Kind != models.OrderBuy {
		t.Errorf("buyers request: got kind %s, want buy", c.Kind)
	}
	wantEarliest := now.AddDate(0, 0, -10)
	if !c.Earliest.Equal(wantEarliest) {
		t.Errorf("earliest: got %v, want %v", c.Earliest, wantEarliest)
	}
}
