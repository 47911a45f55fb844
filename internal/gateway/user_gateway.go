package gateway

import (
	"net/url"

	"stockroom/internal/domain"
)

type UserGateway struct{ c *Client }

func NewUserGateway(c *Client) *UserGateway { return &UserGateway{c: c} }

// ByEmail resolves an email to a user record. A 404 comes back as an
// *APIError; callers treat any failure as "user not resolved".
func (g *UserGateway) ByEmail(email string) (domain.User, error) {
	var out domain.User
	if err := g.c.do("GET", "/api/users/email/"+url.PathEscape(email), nil, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}
