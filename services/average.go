package services

import (
	"errors"
	"math"
	"sort"

	"github.com/Eutropios/WarMAC/models"
)

var (
	// ErrNoListings is returned when the filtered price list is empty.
	ErrNoListings = errors.New("there are no listings matching your search parameters")

	// ErrInvalidPrice is returned when a non-positive price reaches the
	// harmonic mean. Upstream validation should make this unreachable.
	ErrInvalidPrice = errors.New("prices must be positive")
)

// Compute reduces a price list to a single statistic. All statistics
// except mode are computed in full float precision; rounding is left to
// the presentation layer. Mode returns the original integer price as a
// float.
func Compute(prices []int, kind models.StatisticKind) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrNoListings
	}

	switch kind {
	case models.StatMean:
		return mean(prices), nil
	case models.StatMedian:
		return median(prices), nil
	case models.StatMode:
		return float64(mode(prices)), nil
	case models.StatHarmonic:
		return harmonicMean(prices)
	case models.StatGeometric:
		return geometricMean(prices), nil
	}
	return 0, errors.New("not a valid statistic type")
}

func mean(prices []int) float64 {
	sum := 0
	for _, p := range prices {
		sum += p
	}
	return float64(sum) / float64(len(prices))
}

// median sorts a copy ascending and takes the middle element, or the
// average of the two middle elements for even counts.
func median(prices []int) float64 {
	sorted := make([]int, len(prices))
	copy(sorted, prices)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// mode returns the most frequent price. Ties resolve to the value whose
// first occurrence comes earliest in the input; this is a deliberate
// policy choice so repeated runs over the same ordered input stay
// reproducible.
func mode(prices []int) int {
	counts := make(map[int]int, len(prices))
	for _, p := range prices {
		counts[p]++
	}

	best := prices[0]
	bestCount := 0
	seen := make(map[int]struct{}, len(counts))
	for _, p := range prices {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if counts[p] > bestCount {
			best = p
			bestCount = counts[p]
		}
	}
	return best
}

// harmonicMean is count / sum(1/price). Undefined for non-positive
// prices, which are rejected defensively.
func harmonicMean(prices []int) (float64, error) {
	var recip float64
	for _, p := range prices {
		if p <= 0 {
			return 0, ErrInvalidPrice
		}
		recip += 1 / float64(p)
	}
	return float64(len(prices)) / recip, nil
}

// geometricMean is computed through log space to avoid overflowing the
// product of large price lists.
func geometricMean(prices []int) float64 {
	var logSum float64
	for _, p := range prices {
		logSum += math.Log(float64(p))
	}
	return math.Exp(logSum / float64(len(prices)))
}
