package dates

import (
	"math"
	"time"
)

// OverlapMinutes returns the whole minutes an entry spends inside w. An open
// entry (nil end) runs until now. Half-minutes round up.
func OverlapMinutes(entryStart time.Time, entryEnd *time.Time, w Window, now time.Time) int {
	effectiveEnd := now
	if entryEnd != nil {
		effectiveEnd = *entryEnd
	}

	overlapStart := entryStart
	if w.Start.After(overlapStart) {
		overlapStart = w.Start
	}
	overlapEnd := effectiveEnd
	if w.End.Before(overlapEnd) {
		overlapEnd = w.End
	}

	if !overlapEnd.After(overlapStart) {
		return 0
	}
	return int(math.Round(overlapEnd.Sub(overlapStart).Minutes()))
}
