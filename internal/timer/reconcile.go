package timer

import "time"

// Reconcile folds the wall-clock time elapsed since the timer's anchor into
// its remaining milliseconds. It reports whether the timer changed, so callers
// know which timers need persisting.
//
// A timer that counts down to zero stops itself: IsRunning is cleared along
// with the anchor (natural expiry). A timer that still has time left is
// re-anchored at now, which makes repeated reconciliation against later
// instants an idempotent series of increments rather than a double-count from
// the original anchor.
//
// Sub-millisecond remainders are truncated, matching the stored granularity.
// A non-positive elapsed value (clock skew, or a second call within the same
// millisecond) leaves the timer untouched.
func Reconcile(t *Timer, now time.Time) bool {
	if !t.IsRunning || t.LastStartedAt == nil {
		return false
	}

	elapsed := now.Sub(*t.LastStartedAt).Milliseconds()
	if elapsed <= 0 {
		return false
	}

	if remaining := t.RemainingMS - elapsed; remaining > 0 {
		t.RemainingMS = remaining
		anchor := now
		t.LastStartedAt = &anchor
	} else {
		t.RemainingMS = 0
		t.IsRunning = false
		t.LastStartedAt = nil
	}
	t.UpdatedAt = now

	return true
}
