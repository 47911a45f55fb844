package services

import (
	"errors"
	"sync"

	"stockroom/internal/domain"
)

var errRemote = errors.New("remote api unavailable")

// fakeProducts is an in-memory stand-in for the remote product gateway.
type fakeProducts struct {
	mu sync.Mutex

	list    []domain.Product
	listErr error

	createErr error
	updateErr error
	deleteErr error
	patchErr  error
	patchRes  domain.QuantityResult
	gate      *patchGate

	listCalls  int
	listKeys   []int
	created    []domain.Product
	updated    []domain.Product
	deleted    []int
	patchedIDs []int
	patchedQty []int
}

func (f *fakeProducts) ListByUser(userID int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.listKeys = append(f.listKeys, userID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Product, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeProducts) Create(draft domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Product{}, f.createErr
	}
	draft.ID = 1000 + len(f.created)
	f.created = append(f.created, draft)
	f.list = append(f.list, draft)
	return draft, nil
}

func (f *fakeProducts) Update(p domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return domain.Product{}, f.updateErr
	}
	f.updated = append(f.updated, p)
	for i := range f.list {
		if f.list[i].ID == p.ID {
			f.list[i] = p
		}
	}
	return p, nil
}

func (f *fakeProducts) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.list[:0]
	for _, p := range f.list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.list = kept
	return nil
}

// patchGate, when set, lets a test hold a patch call in flight.
type patchGate struct {
	started chan struct{}
	release chan struct{}
}

func (f *fakeProducts) PatchQuantity(id, quantity int) (domain.QuantityResult, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		gate.started <- struct{}{}
		<-gate.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return domain.QuantityResult{}, f.patchErr
	}
	f.patchedIDs = append(f.patchedIDs, id)
	f.patchedQty = append(f.patchedQty, quantity)
	if f.patchRes != (domain.QuantityResult{}) {
		return f.patchRes, nil
	}
	return domain.QuantityResult{Quantity: quantity}, nil
}

func (f *fakeProducts) patchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.patchedIDs)
}

func (f *fakeProducts) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeCategories struct {
	mu      sync.Mutex
	list    []domain.Category
	listErr error
	addErr  error
	nextID  int
}

func (f *fakeCategories) List() ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Category, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeCategories) Create(name string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return domain.Category{}, f.addErr
	}
	f.nextID++
	c := domain.Category{ID: 100 + f.nextID, Name: name}
	f.list = append(f.list, c)
	return c, nil
}

type fakeUsers struct {
	users map[string]domain.User
}

func (f *fakeUsers) ByEmail(email string) (domain.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return domain.User{}, errRemote
}
