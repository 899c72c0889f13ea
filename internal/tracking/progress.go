package tracking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Band classifies how far along a project is against its estimate.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

var ErrInvalidEstimate = errors.New("invalid estimated duration, expected H:MM")

// ParseEstimate converts an "H:MM" duration string into total minutes.
// Hours are an unbounded non-negative integer, minutes must be in [0,59].
func ParseEstimate(estimate string) (int, error) {
	parts := strings.Split(estimate, ":")

	if len(parts) != 2 {
		return 0, ErrInvalidEstimate
	}

	hours, err := strconv.Atoi(parts[0])

	if err != nil || hours < 0 {
		return 0, ErrInvalidEstimate
	}

	minutes, err := strconv.Atoi(parts[1])

	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidEstimate
	}

	return hours*60 + minutes, nil
}

// FormatEstimate renders total minutes back into the persisted "H:MM" form.
func FormatEstimate(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatMinutes renders a minute total the way the UI displays it,
// e.g. "12 hr 30 min".
func FormatMinutes(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	return fmt.Sprintf("%d hr %d min", totalMinutes/60, totalMinutes%60)
}

// ProgressPercent returns tracked progress against the estimate, clamped
// to 100. A zero estimate yields 0 rather than Inf or NaN.
func ProgressPercent(totalMinutes, estimatedMinutes int) float64 {
	if estimatedMinutes <= 0 {
		return 0
	}

	percent := float64(totalMinutes) / float64(estimatedMinutes) * 100

	if percent > 100 {
		return 100
	}

	return percent
}

// Classify maps a progress percentage onto its display band. Boundary
// values belong to the higher band.
func Classify(percent float64) Band {
	switch {
	case percent < 40:
		return BandLow
	case percent < 80:
		return BandMedium
	default:
		return BandHigh
	}
}
