package gateway

import (
	"fmt"

	"stockroom/internal/domain"
)

type ProductGateway struct{ c *Client }

func NewProductGateway(c *Client) *ProductGateway { return &ProductGateway{c: c} }

func (g *ProductGateway) ListByUser(userID int) ([]domain.Product, error) {
	var out []domain.Product
	if err := g.c.do("GET", fmt.Sprintf("/api/products/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a product draft (no id) and returns the created record.
func (g *ProductGateway) Create(draft domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := g.c.do("POST", "/api/products", draft, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

// Update sends the full record; partial updates are not part of the contract.
func (g *ProductGateway) Update(p domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := g.c.do("PUT", fmt.Sprintf("/api/products/%d", p.ID), p, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (g *ProductGateway) Delete(id int) error {
	return g.c.do("DELETE", fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// PatchQuantity asks the server to set a product's quantity. The response
// comes in two shapes: `{"quantity": n}` or
// `{"product": {"quantity": n}, "message": "..."}` — the nested form wins
// when both are present, and the optional message is an advisory note.
func (g *ProductGateway) PatchQuantity(id, quantity int) (domain.QuantityResult, error) {
	var raw struct {
		Quantity *int   `json:"quantity"`
		Message  string `json:"message"`
		Product  *struct {
			Quantity int `json:"quantity"`
		} `json:"product"`
	}
	path := fmt.Sprintf("/api/products/%d/quantity?quantity=%d", id, quantity)
	if err := g.c.do("PATCH", path, nil, &raw); err != nil {
		return domain.QuantityResult{}, err
	}

	res := domain.QuantityResult{Message: raw.Message}
	switch {
	case raw.Product != nil:
		res.Quantity = raw.Product.Quantity
	case raw.Quantity != nil:
		res.Quantity = *raw.Quantity
	default:
		return domain.QuantityResult{}, fmt.Errorf("quantity patch response missing quantity")
	}
	return res, nil
}
