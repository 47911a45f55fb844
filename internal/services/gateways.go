package services

import "stockroom/internal/domain"

// The state layer depends on gateway capabilities, not on the HTTP client
// itself, so tests run against in-memory fakes.

type ProductGateway interface {
	ListByUser(userID int) ([]domain.Product, error)
	Create(draft domain.Product) (domain.Product, error)
	Update(p domain.Product) (domain.Product, error)
	Delete(id int) error
	PatchQuantity(id, quantity int) (domain.QuantityResult, error)
}

type CategoryGateway interface {
	List() ([]domain.Category, error)
	Create(name string) (domain.Category, error)
}

type UserGateway interface {
	ByEmail(email string) (domain.User, error)
}

// Gateways bundles the remote API capabilities a page session needs.
type Gateways struct {
	Products   ProductGateway
	Categories CategoryGateway
	Users      UserGateway
}
