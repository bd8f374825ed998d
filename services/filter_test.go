package services

import (
	"testing"
	"time"

	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/utils"
)

func testFilter() *Filter {
	return NewFilter(utils.NewLogger(false))
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func TestFilterPlatformKindAndVisibility(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.RawOrder{
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 10, LastUpdate: daysAgo(now, 2)},
		{Platform: models.PlatformPS4, Kind: models.OrderSell, Visible: true, Price: 20, LastUpdate: daysAgo(now, 1)},
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: false, Price: 5, LastUpdate: daysAgo(now, 1)},
	}
	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderSell,
		Earliest: daysAgo(now, 5),
	}

	prices := testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 10 {
		t.Errorf("got %v, want [10]", prices)
	}
}

func TestFilterRecencyWindow(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.RawOrder{
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 10, LastUpdate: daysAgo(now, 3)},
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 20, LastUpdate: daysAgo(now, 30)},
	}
	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderSell,
		Earliest: daysAgo(now, 10),
	}

	prices := testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 10 {
		t.Errorf("got %v, want [10]", prices)
	}
}

func TestFilterBuyOrders(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.RawOrder{
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 10, LastUpdate: now},
		{Platform: models.PlatformPC, Kind: models.OrderBuy, Visible: true, Price: 8, LastUpdate: now},
	}
	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderBuy,
		Earliest: daysAgo(now, 5),
	}

	prices := testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 8 {
		t.Errorf("got %v, want [8]", prices)
	}
}

func TestFilterRankConstraint(t *testing.T) {
	now := time.Now().UTC()
	rank0, rank10 := 0, 10
	orders := []models.RawOrder{
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 15, LastUpdate: now, Rank: &rank0},
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 90, LastUpdate: now, Rank: &rank10},
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 40, LastUpdate: now}, // no rank field
	}

	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderSell,
		Earliest: daysAgo(now, 5),
		Rank:     &rank10,
	}
	prices := testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 90 {
		t.Errorf("rank=10: got %v, want [90]", prices)
	}

	criteria.Rank = &rank0
	prices = testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 15 {
		t.Errorf("rank=0: got %v, want [15]", prices)
	}
}

func TestFilterRefinementConstraint(t *testing.T) {
	now := time.Now().UTC()
	intact := models.RefinementIntact
	radiant := models.RefinementRadiant
	orders := []models.RawOrder{
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 5, LastUpdate: now, Refinement: &intact},
		{Platform: models.PlatformPC, Kind: models.OrderSell, Visible: true, Price: 25, LastUpdate: now, Refinement: &radiant},
	}

	criteria := models.FilterCriteria{
		Platform:   models.PlatformPC,
		Kind:       models.OrderSell,
		Earliest:   daysAgo(now, 5),
		Refinement: &radiant,
	}
	prices := testFilter().Apply(orders, criteria)
	if len(prices) != 1 || prices[0] != 25 {
		t.Errorf("radiant: got %v, want [25]", prices)
	}
}

// Relative input order must survive filtering so the mode tie-break
// stays well-defined downstream.
func TestFilterPreservesInputOrder(t *testing.T) {
	now := time.Now().UTC()
	var orders []models.RawOrder
	want := []int{9, 1, 7, 3, 5}
	for _, p := range want {
		orders = append(orders, models.RawOrder{
			Platform: models.PlatformPC, Kind: models.OrderSell,
			Visible: true, Price: p, LastUpdate: now,
		})
	}

	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderSell,
		Earliest: daysAgo(now, 5),
	}
	prices := testFilter().Apply(orders, criteria)
	if len(prices) != len(want) {
		t.Fatalf("got %d prices, want %d", len(prices), len(want))
	}
	for i := range want {
		if prices[i] != want[i] {
			t.Fatalf("order not preserved: got %v, want %v", prices, want)
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	criteria := models.FilterCriteria{
		Platform: models.PlatformPC,
		Kind:     models.OrderSell,
		Earliest: time.Now().AddDate(0, 0, -5),
	}
	prices := testFilter().Apply(nil, criteria)
	if len(prices) != 0 {
		t.Errorf("expected empty result for empty input, got %v", prices)
	}
}
