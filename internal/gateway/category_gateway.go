package gateway

import "stockroom/internal/domain"

type CategoryGateway struct{ c *Client }

func NewCategoryGateway(c *Client) *CategoryGateway { return &CategoryGateway{c: c} }

func (g *CategoryGateway) List() ([]domain.Category, error) {
	var out []domain.Category
	if err := g.c.do("GET", "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *CategoryGateway) Create(name string) (domain.Category, error) {
	var out domain.Category
	body := map[string]string{"name": name}
	if err := g.c.do("POST", "/categories", body, &out); err != nil {
		return domain.Category{}, err
	}
	return out, nil
}
