package schema

import (
	"fmt"
	"strings"
	"time"
)

// MonthKey returns the YYYY-MM bucket key for time-series aggregations.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// HourKey returns the HH:00 bucket key for data-entry pattern charts.
func HourKey(t time.Time) string {
	return t.Format("15") + ":00"
}

// HighestRisk returns the highest-severity rating present, ties broken
// High > Medium > Low. Empty input yields UnknownRisk.
func HighestRisk(levels []RiskRating) RiskRating {
	highest := UnknownRisk
	best := -1
	for _, r := range levels {
		if order := RiskOrder(r); order > best {
			best = order
			highest = r
		}
	}
	return highest
}

// FormatDiseases renders a distinct disease set for table output,
// truncating long lists with a "+N more" suffix past three entries.
func FormatDiseases(diseases []string) string {
	if len(diseases) == 0 {
		return "-"
	}
	if len(diseases) <= 3 {
		return strings.Join(diseases, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(diseases[:3], ", "), len(diseases)-3)
}
