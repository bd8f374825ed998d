package services

import (
	"fmt"
	"io"

	"github.com/Eutropios/WarMAC/models"
)

const labelWidth = 23

// PrintResult writes the full aligned report for a computed statistic.
func PrintResult(w io.Writer, r models.StatisticResult) {
	dayLabel := "days"
	if r.TimeRange == 1 {
		dayLabel = "day"
	}

	fmt.Fprintf(w, "%-*s%s\n", labelWidth, "Item:", r.Item)
	fmt.Fprintf(w, "%-*s%s\n", labelWidth, "Statistic Found:", r.Kind.DisplayName())
	fmt.Fprintf(w, "%-*s%d %s\n", labelWidth, "Time Range Used:", r.TimeRange, dayLabel)
	fmt.Fprintf(w, "%-*s%s platinum\n", labelWidth, r.Kind.DisplayName()+" Price:", FormatValue(r.Value, r.Kind))
	fmt.Fprintf(w, "%-*s%d platinum\n", labelWidth, "Max Price:", r.MaxPrice)
	fmt.Fprintf(w, "%-*s%d platinum\n", labelWidth, "Min Price:", r.MinPrice)
	fmt.Fprintf(w, "%-*s%d\n", labelWidth, "Number of Orders:", r.Count)
}

// PrintValue writes just the statistic value, for non-verbose runs.
func PrintValue(w io.Writer, r models.StatisticResult) {
	fmt.Fprintln(w, FormatValue(r.Value, r.Kind))
}

// FormatValue rounds for display: one decimal place for the fractional
// statistics, the original integer form for mode. The calculator itself
// returns full precision.
func FormatValue(value float64, kind models.StatisticKind) string {
	if kind == models.StatMode {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}
