package services

import (
	"sync"

	"stockroom/internal/domain"
)

// CategoryStore holds the flat category list for a page session. It is
// fetched once at session start and only appended to afterwards: a created
// category goes on the end, no refetch, so ordering stays fetch-order
// followed by creation-order.
type CategoryStore struct {
	mu   sync.Mutex
	gw   CategoryGateway
	cats []domain.Category
}

func NewCategoryStore(gw CategoryGateway) *CategoryStore {
	return &CategoryStore{gw: gw}
}

// Load fetches the category list. On failure the list stays empty and the
// error is returned for logging — the page stays usable with an empty
// dropdown rather than blocking.
func (s *CategoryStore) Load() error {
	cats, err := s.gw.List()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cats = cats
	s.mu.Unlock()
	return nil
}

// Add posts a new category and appends the server's record to the local
// list. On failure the list is unchanged and the error goes to the caller.
func (s *CategoryStore) Add(name string) (domain.Category, error) {
	created, err := s.gw.Create(name)
	if err != nil {
		return domain.Category{}, err
	}
	s.mu.Lock()
	s.cats = append(s.cats, created)
	s.mu.Unlock()
	return created, nil
}

// Categories returns a copy of the current list.
func (s *CategoryStore) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, len(s.cats))
	copy(out, s.cats)
	return out
}
