package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/breaktimer/timerd/internal/timer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTimer(id, name string, createdAt time.Time) *timer.Timer {
	return &timer.Timer{
		ID:          id,
		Name:        name,
		DurationMS:  300000,
		RemainingMS: 300000,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestStoreInsertAndGetAll(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	anchor := now.Add(time.Minute)
	tm := testTimer("timer-1", "Coffee", now)
	tm.IsRunning = true
	tm.LastStartedAt = &anchor

	if err := s.Insert(tm); err != nil {
		t.Fatalf("Failed to insert timer: %v", err)
	}

	timers, err := s.GetAll()
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}

	if len(timers) != 1 {
		t.Fatalf("Expected 1 timer, got %d", len(timers))
	}

	got := timers[0]
	if got.ID != "timer-1" {
		t.Errorf("Expected ID 'timer-1', got %q", got.ID)
	}
	if got.Name != "Coffee" {
		t.Errorf("Expected name 'Coffee', got %q", got.Name)
	}
	if got.DurationMS != 300000 || got.RemainingMS != 300000 {
		t.Errorf("Expected duration/remaining 300000, got %d/%d", got.DurationMS, got.RemainingMS)
	}
	if !got.IsRunning {
		t.Error("Expected timer to be running")
	}
	if got.LastStartedAt == nil {
		t.Fatal("Expected last_started_at to be set")
	}
	if !got.LastStartedAt.Equal(anchor) {
		t.Errorf("Expected anchor %v, got %v", anchor, *got.LastStartedAt)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("Expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestStoreGetAllCreationOrder(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Insert out of creation order.
	for _, i := range []int{2, 0, 1} {
		tm := testTimer("timer-"+string(rune('a'+i)), "T", now.Add(time.Duration(i)*time.Minute))
		if err := s.Insert(tm); err != nil {
			t.Fatalf("Failed to insert timer: %v", err)
		}
	}

	timers, err := s.GetAll()
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}

	if len(timers) != 3 {
		t.Fatalf("Expected 3 timers, got %d", len(timers))
	}

	for i, want := range []string{"timer-a", "timer-b", "timer-c"} {
		if timers[i].ID != want {
			t.Errorf("Expected timer %d to be %q, got %q", i, want, timers[i].ID)
		}
	}
}

func TestStoreGetByIDsRequestOrder(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"timer-a", "timer-b", "timer-c"} {
		if err := s.Insert(testTimer(id, "T", now)); err != nil {
			t.Fatalf("Failed to insert timer: %v", err)
		}
	}

	timers, err := s.GetByIDs([]string{"timer-c", "timer-a"})
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}

	if len(timers) != 2 {
		t.Fatalf("Expected 2 timers, got %d", len(timers))
	}
	if timers[0].ID != "timer-c" || timers[1].ID != "timer-a" {
		t.Errorf("Expected request order [timer-c timer-a], got [%s %s]", timers[0].ID, timers[1].ID)
	}
}

func TestStoreGetByIDsMissing(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.Insert(testTimer("timer-a", "T", now)); err != nil {
		t.Fatalf("Failed to insert timer: %v", err)
	}

	_, err := s.GetByIDs([]string{"timer-a", "nope-1", "nope-2"})
	if !errors.Is(err, timer.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope-1") || !strings.Contains(err.Error(), "nope-2") {
		t.Errorf("Expected error to name the missing ids, got %q", err.Error())
	}
}

func TestStoreGetByIDsDuplicate(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.Insert(testTimer("timer-a", "T", now)); err != nil {
		t.Fatalf("Failed to insert timer: %v", err)
	}

	_, err := s.GetByIDs([]string{"timer-a", "timer-a"})
	if !errors.Is(err, timer.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for duplicated ids, got %v", err)
	}
}

func TestStoreGetByIDsEmpty(t *testing.T) {
	s := newTestStore(t)

	timers, err := s.GetByIDs(nil)
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if len(timers) != 0 {
		t.Errorf("Expected no timers, got %d", len(timers))
	}
}

func TestStoreUpdateBatch(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := testTimer("timer-a", "A", now)
	b := testTimer("timer-b", "B", now)
	for _, tm := range []*timer.Timer{a, b} {
		if err := s.Insert(tm); err != nil {
			t.Fatalf("Failed to insert timer: %v", err)
		}
	}

	later := now.Add(time.Minute)
	a.RemainingMS = 240000
	a.IsRunning = true
	a.LastStartedAt = &later
	a.UpdatedAt = later
	b.RemainingMS = 0
	b.UpdatedAt = later

	if err := s.UpdateBatch([]*timer.Timer{a, b}); err != nil {
		t.Fatalf("Failed to update batch: %v", err)
	}

	timers, err := s.GetByIDs([]string{"timer-a", "timer-b"})
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}

	if timers[0].RemainingMS != 240000 || !timers[0].IsRunning {
		t.Errorf("Expected timer-a updated, got remaining=%d running=%v",
			timers[0].RemainingMS, timers[0].IsRunning)
	}
	if timers[0].LastStartedAt == nil || !timers[0].LastStartedAt.Equal(later) {
		t.Errorf("Expected timer-a anchor %v, got %v", later, timers[0].LastStartedAt)
	}
	if timers[1].RemainingMS != 0 {
		t.Errorf("Expected timer-b remaining 0, got %d", timers[1].RemainingMS)
	}
	if timers[1].LastStartedAt != nil {
		t.Errorf("Expected timer-b anchor cleared, got %v", *timers[1].LastStartedAt)
	}
}

func TestStoreDeleteBatch(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := testTimer("timer-a", "A", now)
	b := testTimer("timer-b", "B", now.Add(time.Second))
	c := testTimer("timer-c", "C", now.Add(2*time.Second))
	for _, tm := range []*timer.Timer{a, b, c} {
		if err := s.Insert(tm); err != nil {
			t.Fatalf("Failed to insert timer: %v", err)
		}
	}

	if err := s.DeleteBatch([]*timer.Timer{a, c}); err != nil {
		t.Fatalf("Failed to delete batch: %v", err)
	}

	timers, err := s.GetAll()
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}
	if len(timers) != 1 {
		t.Fatalf("Expected 1 timer, got %d", len(timers))
	}
	if timers[0].ID != "timer-b" {
		t.Errorf("Expected timer-b to survive, got %q", timers[0].ID)
	}
}

func TestStoreDeleteOne(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.Insert(testTimer("timer-a", "A", now)); err != nil {
		t.Fatalf("Failed to insert timer: %v", err)
	}

	if err := s.DeleteOne("timer-a"); err != nil {
		t.Fatalf("Failed to delete timer: %v", err)
	}

	timers, err := s.GetAll()
	if err != nil {
		t.Fatalf("Failed to get timers: %v", err)
	}
	if len(timers) != 0 {
		t.Errorf("Expected 0 timers, got %d", len(timers))
	}
}

func TestStoreDeleteOneNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteOne("nonexistent")
	if !errors.Is(err, timer.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("Expected error to name the id, got %q", err.Error())
	}
}
