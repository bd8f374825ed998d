package services

import "github.com/Eutropios/WarMAC/models"

// Summarize packages a computed statistic with min/max/count metadata.
// Callers must invoke it only after a successful Compute, so prices is
// never empty here.
func Summarize(item string, prices []int, value float64, kind models.StatisticKind, days int) models.StatisticResult {
	min, max := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}

	return models.StatisticResult{
		Item:      item,
		Kind:      kind,
		Value:     value,
		MinPrice:  min,
		MaxPrice:  max,
		Count:     len(prices),
		TimeRange: days,
	}
}
