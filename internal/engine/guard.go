package engine

import "time"

// DefaultDebounce absorbs a user double-tapping the completion control
// before the UI catches up. A heuristic, not a protocol guarantee;
// overridable via config.
const DefaultDebounce = 2 * time.Second

// IsDuplicate reports whether a completion submitted at now should be
// treated as a re-submission of the task's latest completion. Must be
// evaluated inside the serialized transaction, otherwise two back-to-back
// submissions can both pass the check.
func IsDuplicate(lastCompleted, now time.Time, window time.Duration) bool {
	if lastCompleted.IsZero() {
		return false
	}
	if window <= 0 {
		window = DefaultDebounce
	}
	diff := now.Sub(lastCompleted)
	if diff < 0 {
		diff = -diff
	}
	return diff < window
}
