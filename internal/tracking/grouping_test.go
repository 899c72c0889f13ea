package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/worklet-dev/worklet/internal/models"
)

func TestWeekKey(t *testing.T) {
	// Wednesday buckets under the preceding Monday
	assert.Equal(t, "2024-01-01", WeekKey(ts("2024-01-03T15:04:05Z")))

	// A Monday buckets under itself, even one second past midnight
	assert.Equal(t, "2024-01-08", WeekKey(ts("2024-01-08T00:00:01Z")))

	// Sunday belongs to the week that started six days earlier
	assert.Equal(t, "2024-01-01", WeekKey(ts("2024-01-07T23:59:59Z")))
}

func TestWeekStartKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	start := WeekStart(time.Date(2024, 1, 3, 1, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), start)
}

func TestParseWeekKey(t *testing.T) {
	parsed, err := ParseWeekKey("2024-01-08")
	assert.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())

	_, err = ParseWeekKey("not-a-week")
	assert.Error(t, err)
}

func TestPartition(t *testing.T) {
	sessions := []models.Session{
		running("2024-01-03T10:00:00Z"),
		completed("2024-01-02T10:00:00Z", "2024-01-02T11:00:00Z"),
		running("2024-01-01T10:00:00Z"),
	}

	active, past := Partition(sessions)
	assert.Len(t, active, 2)
	assert.Len(t, past, 1)

	// Zero sessions of either kind is fine
	active, past = Partition(nil)
	assert.Empty(t, active)
	assert.Empty(t, past)
}

func TestGroupSessionsOrderingAndTotals(t *testing.T) {
	sessions := []models.Session{
		completed("2024-01-03T09:00:00Z", "2024-01-03T10:00:00Z"),  // week 2024-01-01, Wednesday
		completed("2024-01-03T14:00:00Z", "2024-01-03T14:30:00Z"),  // same day, later
		completed("2024-01-02T08:00:00Z", "2024-01-02T08:45:00Z"),  // same week, Tuesday
		completed("2024-01-10T10:00:00Z", "2024-01-10T11:30:00Z"),  // week 2024-01-08
	}

	weeks := GroupSessions(sessions)
	assert.Len(t, weeks, 2)

	// Weeks strictly descending
	assert.Equal(t, "2024-01-08", weeks[0].Key)
	assert.Equal(t, "2024-01-01", weeks[1].Key)
	assert.Equal(t, 90, weeks[0].TotalMinutes)
	assert.Equal(t, 135, weeks[1].TotalMinutes)

	// Days within a week strictly descending
	older := weeks[1]
	assert.Len(t, older.Days, 2)
	assert.Equal(t, "Wednesday, January 3", older.Days[0].Label)
	assert.Equal(t, "Tuesday, January 2", older.Days[1].Label)
	assert.Equal(t, 90, older.Days[0].TotalMinutes)
	assert.Equal(t, 45, older.Days[1].TotalMinutes)

	// Sessions within a day strictly descending by start time
	wednesday := older.Days[0]
	assert.Len(t, wednesday.Sessions, 2)
	assert.True(t, wednesday.Sessions[0].StartTime.After(wednesday.Sessions[1].StartTime))
}

func TestGroupSessionsEmpty(t *testing.T) {
	assert.Empty(t, GroupSessions(nil))
}
