package tracking

import (
	"sort"
	"time"

	"github.com/worklet-dev/worklet/internal/models"
)

const weekKeyLayout = "2006-01-02"

// DayGroup is one calendar day's worth of completed sessions, newest
// session first.
type DayGroup struct {
	Date         time.Time        `json:"-"`
	Label        string           `json:"label"`
	TotalMinutes int              `json:"total_minutes"`
	Sessions     []models.Session `json:"sessions"`
}

// WeekGroup is one Monday-aligned week of completed sessions, split into
// day groups. Key is the week start date as yyyy-MM-dd.
type WeekGroup struct {
	WeekStart    time.Time  `json:"-"`
	Key          string     `json:"week"`
	Label        string     `json:"label"`
	TotalMinutes int        `json:"total_minutes"`
	Collapsed    bool       `json:"collapsed"`
	Days         []DayGroup `json:"days"`
}

// Partition splits sessions into active (no end time) and past. Stored
// data may hold any number of active sessions even though starting a
// second one is rejected at the endpoint, so no count is assumed.
func Partition(sessions []models.Session) (active, past []models.Session) {
	for _, s := range sessions {
		if s.EndTime == nil {
			active = append(active, s)
		} else {
			past = append(past, s)
		}
	}

	return active, past
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7

	return day.AddDate(0, 0, -offset)
}

// WeekKey returns the yyyy-MM-dd key of the week containing t.
func WeekKey(t time.Time) string {
	return WeekStart(t).Format(weekKeyLayout)
}

// ParseWeekKey parses a yyyy-MM-dd week key.
func ParseWeekKey(key string) (time.Time, error) {
	return time.Parse(weekKeyLayout, key)
}

// GroupSessions buckets completed sessions by Monday-aligned week, then by
// calendar day of their start time. Weeks, days within a week, and
// sessions within a day are all ordered most recent first, and every
// bucket carries its minute total.
func GroupSessions(past []models.Session) []WeekGroup {
	byWeek := make(map[string][]models.Session)

	for _, s := range past {
		key := WeekKey(s.StartTime)
		byWeek[key] = append(byWeek[key], s)
	}

	weeks := make([]WeekGroup, 0, len(byWeek))

	for key, sessions := range byWeek {
		start, _ := time.Parse(weekKeyLayout, key)

		weeks = append(weeks, WeekGroup{
			WeekStart:    start,
			Key:          key,
			Label:        start.Format("Week of Jan 2, 2006"),
			TotalMinutes: TotalMinutes(sessions),
			Days:         groupByDay(sessions),
		})
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.After(weeks[j].WeekStart)
	})

	return weeks
}

func groupByDay(sessions []models.Session) []DayGroup {
	byDay := make(map[string][]models.Session)

	for _, s := range sessions {
		day := s.StartTime.Format(weekKeyLayout)
		byDay[day] = append(byDay[day], s)
	}

	days := make([]DayGroup, 0, len(byDay))

	for key, daySessions := range byDay {
		date, _ := time.Parse(weekKeyLayout, key)

		sort.Slice(daySessions, func(i, j int) bool {
			return daySessions[i].StartTime.After(daySessions[j].StartTime)
		})

		days = append(days, DayGroup{
			Date:         date,
			Label:        date.Format("Monday, January 2"),
			TotalMinutes: TotalMinutes(daySessions),
			Sessions:     daySessions,
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	return days
}
