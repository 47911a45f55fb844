package handlers

import (
	"stockroom/internal/domain"
	"stockroom/internal/services"
)

// itemView is one product card: canonical fields plus the controller's
// transient state.
type itemView struct {
	Product      domain.Product `json:"product"`
	Quantity     int            `json:"quantity"`
	Busy         bool           `json:"busy"`
	Warning      string         `json:"warning,omitempty"`
	CanDecrement bool           `json:"canDecrement"`
	DeleteOpen   bool           `json:"deleteOpen"`
	EditOpen     bool           `json:"editOpen"`
	Draft        domain.Product `json:"draft"`
}

type groupView struct {
	CategoryID   int        `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Items        []itemView `json:"items"`
}

func groupViews(sess *services.PageSession) []groupView {
	groups := sess.Groups()
	out := make([]groupView, 0, len(groups))
	for _, g := range groups {
		gv := groupView{CategoryID: g.CategoryID, CategoryName: g.CategoryName}
		for _, p := range g.Products {
			ic, err := sess.Item(p.ID)
			if err != nil {
				continue
			}
			gv.Items = append(gv.Items, itemView{
				Product:      ic.Product(),
				Quantity:     ic.Quantity(),
				Busy:         ic.Busy(),
				Warning:      ic.Warning(),
				CanDecrement: ic.CanDecrement(),
				DeleteOpen:   ic.DeleteConfirmOpen(),
				EditOpen:     ic.EditOpen(),
				Draft:        ic.Draft(),
			})
		}
		out = append(out, gv)
	}
	return out
}
