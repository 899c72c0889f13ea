package tracking

import "time"

// Weeks older than this many days start out collapsed.
const collapseAfterDays = 14

// DefaultCollapsed reports whether a week group should render collapsed
// before the user has touched it: strictly more than 14 full days
// between the week start and now.
func DefaultCollapsed(now, weekStart time.Time) bool {
	return int(now.Sub(weekStart).Hours()/24) > collapseAfterDays
}

// ApplyCollapse sets each week's collapsed state from the user's saved
// toggles, falling back to the computed default for weeks the user has
// never touched. The override map itself is never written to, so a
// refresh cannot clobber an existing toggle.
func ApplyCollapse(weeks []WeekGroup, overrides map[string]bool, now time.Time) {
	for i := range weeks {
		if collapsed, ok := overrides[weeks[i].Key]; ok {
			weeks[i].Collapsed = collapsed
		} else {
			weeks[i].Collapsed = DefaultCollapsed(now, weeks[i].WeekStart)
		}
	}
}
