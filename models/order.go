package models

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies which game platform an order was posted on.
type Platform string

const (
	PlatformPC     Platform = "pc"
	PlatformPS4    Platform = "ps4"
	PlatformXbox   Platform = "xbox"
	PlatformSwitch Platform = "switch"
)

// Platforms lists every platform accepted by the CLI and the API.
var Platforms = []Platform{PlatformPC, PlatformPS4, PlatformXbox, PlatformSwitch}

// ParsePlatform validates a user-supplied platform string.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q (expected one of %s)", s, joinPlatforms())
}

func joinPlatforms() string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// OrderKind distinguishes buy orders from sell orders.
type OrderKind string

const (
	OrderSell OrderKind = "sell"
	OrderBuy  OrderKind = "buy"
)

// Refinement is the quality tier of a relic listing.
type Refinement string

const (
	RefinementIntact      Refinement = "intact"
	RefinementExceptional Refinement = "exceptional"
	RefinementFlawless    Refinement = "flawless"
	RefinementRadiant     Refinement = "radiant"
)

// StatisticKind selects which aggregate measure to compute.
type StatisticKind string

const (
	StatMedian    StatisticKind = "median"
	StatMean      StatisticKind = "mean"
	StatMode      StatisticKind = "mode"
	StatHarmonic  StatisticKind = "harmonic"
	StatGeometric StatisticKind = "geometric"
)

// StatisticKinds lists every supported statistic.
var StatisticKinds = []StatisticKind{StatMedian, StatMean, StatMode, StatHarmonic, StatGeometric}

// ParseStatisticKind validates a user-supplied statistic name.
func ParseStatisticKind(s string) (StatisticKind, error) {
	k := StatisticKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatisticKinds {
		if k == known {
			return k, nil
		}
	}
	names := make([]string, len(StatisticKinds))
	for i, sk := range StatisticKinds {
		names[i] = string(sk)
	}
	return "", fmt.Errorf("invalid statistic %q (expected one of %s)", s, strings.Join(names, ", "))
}

// DisplayName returns the statistic's label for console output,
// e.g. "harmonic" -> "Harmonic Mean".
func (k StatisticKind) DisplayName() string {
	switch k {
	case StatMedian:
		return "Median"
	case StatMean:
		return "Mean"
	case StatMode:
		return "Mode"
	case StatHarmonic:
		return "Harmonic Mean"
	case StatGeometric:
		return "Geometric Mean"
	}
	return string(k)
}

// RawOrder is one listing exactly as returned by the marketplace.
// Immutable once fetched; discarded after the statistic is computed.
type RawOrder struct {
	Platform   Platform
	Price      int
	LastUpdate time.Time
	Kind       OrderKind
	Visible    bool
	Rank       *int        // mods and arcanes only
	Refinement *Refinement // relics only
}

// ItemInfo describes the fetched item itself, derived from its tags.
type ItemInfo struct {
	Name       string
	Slug       string
	IsRelic    bool
	IsModOrArc bool
	MaxRank    int // -1 when the item is not a mod or arcane
}

// FilterCriteria narrows a raw order sequence. Rank and Refinement are
// mutually exclusive; config construction enforces that before the
// pipeline runs.
type FilterCriteria struct {
	Platform   Platform
	Kind       OrderKind
	Earliest   time.Time
	Rank       *int
	Refinement *Refinement
}

// StatisticResult packages a computed statistic with its summary
// metadata for display or persistence.
type StatisticResult struct {
	Item      string        `json:"item"`
	Kind      StatisticKind `json:"statistic"`
	Value     float64       `json:"value"`
	MinPrice  int           `json:"min_price"`
	MaxPrice  int           `json:"max_price"`
	Count     int           `json:"order_count"`
	TimeRange int           `json:"time_range_days"`
}
