// Package timer implements the countdown-timer domain: the Timer model,
// pull-based reconciliation of remaining time, and the service that
// orchestrates persistence.
//
// Timers carry no live clock. A running timer stores the instant it was last
// anchored (LastStartedAt) and the milliseconds that remained at that instant;
// reconciliation folds the elapsed wall-clock time into RemainingMS whenever
// the timer is read or acted on.
package timer

import (
	"fmt"
	"time"
)

// Timer is a named countdown.
//
// Invariants:
//   - 0 <= RemainingMS <= DurationMS
//   - IsRunning is true exactly when LastStartedAt is set
//   - RemainingMS == 0 implies IsRunning == false
//   - DurationMS never changes after creation
type Timer struct {
	ID            string
	Name          string
	DurationMS    int64
	RemainingMS   int64
	IsRunning     bool
	LastStartedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Action is one of the four bulk operations a caller can apply to timers.
type Action string

// Supported actions.
const (
	ActionStart  Action = "start"
	ActionPause  Action = "pause"
	ActionReset  Action = "reset"
	ActionDelete Action = "delete"
)

// ParseAction validates an action name from the wire.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionStart, ActionPause, ActionReset, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}
