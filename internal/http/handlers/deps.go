package handlers

import (
	"stockroom/internal/config"
	"stockroom/internal/gateway"
	"stockroom/internal/services"
)

type Deps struct {
	Inventory *InventoryHandler
	Items     *ItemHandler
	Sessions  *services.SessionManager
}

// NewDeps wires the handler graph over a set of gateway capabilities. Tests
// pass fakes; production wiring goes through NewHTTPDeps.
func NewDeps(gws services.Gateways) *Deps {
	sessions := services.NewSessionManager(gws)
	return &Deps{
		Inventory: &InventoryHandler{Sessions: sessions},
		Items:     &ItemHandler{Sessions: sessions},
		Sessions:  sessions,
	}
}

// NewHTTPDeps builds the real remote gateways from config.
func NewHTTPDeps(cfg config.Config) *Deps {
	base := gateway.NewClient(cfg.APIBaseURL)
	return NewDeps(services.Gateways{
		Products:   gateway.NewProductGateway(base),
		Categories: gateway.NewCategoryGateway(base),
		Users:      gateway.NewUserGateway(base),
	})
}
