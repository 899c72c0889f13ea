package tracking

import (
	"time"

	"github.com/worklet-dev/worklet/internal/models"
)

// ElapsedMinutes returns the whole minutes between start and end,
// truncated. Spans where end precedes start clamp to zero so a bad row
// can never drag a bucket total negative.
func ElapsedMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// SessionMinutes returns the elapsed minutes of a completed session.
// Active sessions contribute zero.
func SessionMinutes(s models.Session) int {
	if s.EndTime == nil {
		return 0
	}
	return ElapsedMinutes(s.StartTime, *s.EndTime)
}

// TotalMinutes sums elapsed minutes across completed sessions.
func TotalMinutes(sessions []models.Session) int {
	total := 0

	for _, s := range sessions {
		total += SessionMinutes(s)
	}

	return total
}
