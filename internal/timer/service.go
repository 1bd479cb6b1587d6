package timer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service implements the timer use cases on top of a Store. It holds no state
// of its own; every call reads its targets, computes, and writes back in one
// batch.
type Service struct {
	store Store

	// timeNow returns the current instant. Defaults to time.Now.
	timeNow func() time.Time
}

// NewService creates a service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store:   store,
		timeNow: time.Now,
	}
}

// SetTimeNow overrides the service's time source. Tests use it to drive
// reconciliation with a deterministic clock.
func (s *Service) SetTimeNow(fn func() time.Time) {
	s.timeNow = fn
}

// Create validates and persists a new timer. The timer starts idle with its
// full duration remaining.
func (s *Service) Create(name string, durationMS int64) (*Timer, error) {
	if durationMS <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMS)
	}

	now := s.timeNow().UTC()
	t := &Timer{
		ID:          uuid.New().String(),
		Name:        name,
		DurationMS:  durationMS,
		RemainingMS: durationMS,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(t); err != nil {
		return nil, fmt.Errorf("insert timer: %w", err)
	}
	return t, nil
}

// List returns all timers in creation order, reconciled against a single
// current instant. Timers whose state changed through reconciliation are
// persisted before returning.
func (s *Service) List() ([]*Timer, error) {
	timers, err := s.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load timers: %w", err)
	}

	now := s.timeNow().UTC()
	var changed []*Timer
	for _, t := range timers {
		if Reconcile(t, now) {
			changed = append(changed, t)
		}
	}

	if len(changed) > 0 {
		if err := s.store.UpdateBatch(changed); err != nil {
			return nil, fmt.Errorf("persist reconciled timers: %w", err)
		}
	}
	return timers, nil
}

// Apply runs one action against a target set of timers. An empty ids slice
// targets every timer; otherwise the ids must all resolve before anything is
// mutated, so a failed resolution leaves the store untouched.
//
// Delete removes the targets and returns an empty set; callers wanting the
// survivors issue a fresh List. The other actions reconcile each target
// first, apply the transition, and persist the batch in one transaction. The
// result preserves the resolved order.
func (s *Service) Apply(action Action, ids []string) ([]*Timer, error) {
	targets, err := s.resolveTargets(ids)
	if err != nil {
		return nil, err
	}

	if action == ActionDelete {
		if err := s.store.DeleteBatch(targets); err != nil {
			return nil, fmt.Errorf("delete timers: %w", err)
		}
		return []*Timer{}, nil
	}

	now := s.timeNow().UTC()
	for _, t := range targets {
		Reconcile(t, now)

		switch action {
		case ActionStart:
			// Starting an expired timer is a no-op; it still counts as
			// touched below.
			if t.RemainingMS > 0 {
				t.IsRunning = true
				anchor := now
				t.LastStartedAt = &anchor
			}
		case ActionPause:
			t.IsRunning = false
			t.LastStartedAt = nil
		case ActionReset:
			t.RemainingMS = t.DurationMS
			t.IsRunning = false
			t.LastStartedAt = nil
		}
		t.UpdatedAt = now
	}

	if err := s.store.UpdateBatch(targets); err != nil {
		return nil, fmt.Errorf("persist timers: %w", err)
	}
	return targets, nil
}

// Delete removes a single timer by id. It fails with ErrNotFound if the id
// does not exist.
func (s *Service) Delete(id string) error {
	return s.store.DeleteOne(id)
}

func (s *Service) resolveTargets(ids []string) ([]*Timer, error) {
	if len(ids) == 0 {
		timers, err := s.store.GetAll()
		if err != nil {
			return nil, fmt.Errorf("load timers: %w", err)
		}
		return timers, nil
	}
	return s.store.GetByIDs(ids)
}
