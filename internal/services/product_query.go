package services

import (
	"sync"

	"stockroom/internal/domain"
)

// ProductQuery caches the product list for one user key. A zero key disables
// the query entirely: no call is made and no data is held. Changing the key
// drops the old result and fetches for the new one. A failed refetch keeps
// the previous data and raises the error flag instead.
type ProductQuery struct {
	mu      sync.Mutex
	gw      ProductGateway
	userID  int
	data    []domain.Product
	hasData bool
	loading bool
	errored bool
}

func NewProductQuery(gw ProductGateway) *ProductQuery {
	return &ProductQuery{gw: gw}
}

// SetKey points the query at a user and fetches. userID 0 clears the cache
// and disables fetching.
func (q *ProductQuery) SetKey(userID int) error {
	q.mu.Lock()
	if userID != q.userID {
		q.data = nil
		q.hasData = false
		q.errored = false
	}
	q.userID = userID
	q.mu.Unlock()

	if userID == 0 {
		return nil
	}
	return q.Refetch()
}

// Refetch re-issues the fetch for the current key. On success the data is
// replaced wholesale; on failure the previous data survives and the error
// flag is set. Disabled (zero) keys never issue a call.
func (q *ProductQuery) Refetch() error {
	q.mu.Lock()
	key := q.userID
	if key == 0 {
		q.mu.Unlock()
		return nil
	}
	q.loading = true
	q.mu.Unlock()

	data, err := q.gw.ListByUser(key)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = false
	if err != nil {
		q.errored = true
		return err
	}
	// Ignore a response for a key that changed while the call was in flight.
	if q.userID != key {
		return nil
	}
	q.data = data
	q.hasData = true
	q.errored = false
	return nil
}

// Data returns the cached list and whether any result is held. The returned
// slice is shared; only the session-level operations replace it.
func (q *ProductQuery) Data() ([]domain.Product, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data, q.hasData
}

func (q *ProductQuery) Key() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.userID
}

func (q *ProductQuery) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

func (q *ProductQuery) Errored() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errored
}

// Remove drops one product from the cached list without a refetch. Used
// after a confirmed delete: the record is gone server-side, so local removal
// is sufficient.
func (q *ProductQuery) Remove(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.hasData {
		return
	}
	kept := q.data[:0]
	for _, p := range q.data {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	q.data = kept
}
