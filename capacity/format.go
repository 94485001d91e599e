package capacity

import (
	"fmt"
	"strconv"
	"strings"
)

// PresetDriveSizes are the common advertised drive sizes in TB.
var PresetDriveSizes = []float64{1, 2, 3, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}

// DefaultDriveSize is the preselected drive size in TB.
const DefaultDriveSize = 12.0

// FormatCapacity renders a TiB figure with two decimals, optionally followed
// by its TB equivalent.
func FormatCapacity(tib float64, showBoth bool) string {
	if showBoth {
		return fmt.Sprintf("%.2f TiB (%.2f TB)", tib, ToDecimalUnits(tib))
	}
	return fmt.Sprintf("%.2f TiB", tib)
}

// FormatPercentage renders a ratio as a percentage with one decimal.
func FormatPercentage(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatSize renders an advertised size without trailing zeros, e.g. "12TB".
func FormatSize(tb float64) string {
	return strconv.FormatFloat(tb, 'f', -1, 64) + "TB"
}

// FormatDriveList summarises drives as counts per size in first-seen order,
// e.g. "2x 8TB, 1x 10TB".
func FormatDriveList(drives []float64) string {
	counts := make(map[float64]int)
	var order []float64
	for _, size := range drives {
		if counts[size] == 0 {
			order = append(order, size)
		}
		counts[size]++
	}

	parts := make([]string, 0, len(order))
	for _, size := range order {
		parts = append(parts, fmt.Sprintf("%dx %s", counts[size], FormatSize(size)))
	}
	return strings.Join(parts, ", ")
}

// FaultToleranceText describes how many drive failures a scheme survives.
func FaultToleranceText(failures int) string {
	if failures <= 0 {
		return "No redundancy - any drive failure results in data loss"
	}
	plural := ""
	if failures > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Can survive %d drive failure%s without data loss", failures, plural)
}

// PerformanceText renders the read/write ratings of a scheme.
func PerformanceText(s Scheme) string {
	return fmt.Sprintf("Read: %s | Write: %s", s.ReadPerformance, s.WritePerformance)
}
