package timer

// Store is the persistence contract the service depends on. Implementations
// must serialize writes to a given timer id; batch mutations are applied as a
// single transaction so concurrent readers never observe a torn mix of pre-
// and post-reconciliation state.
type Store interface {
	// GetAll returns every timer ordered by creation time ascending.
	GetAll() ([]*Timer, error)

	// GetByIDs returns the timers for exactly the requested ids, in request
	// order. It fails with an error satisfying errors.Is(err, ErrNotFound)
	// naming the missing ids if any id does not resolve.
	GetByIDs(ids []string) ([]*Timer, error)

	// Insert persists a newly created timer.
	Insert(t *Timer) error

	// UpdateBatch persists the given timers in one transaction.
	UpdateBatch(timers []*Timer) error

	// DeleteBatch removes the given timers in one transaction.
	DeleteBatch(timers []*Timer) error

	// DeleteOne removes a single timer, failing with ErrNotFound if absent.
	DeleteOne(id string) error
}
