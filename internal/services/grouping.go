package services

import "stockroom/internal/domain"

// GroupByCategory folds a flat product list into category groups. One pass:
// the first product seen for a category creates the group and fixes its
// label; later members append in input order. Group order is the order of
// first appearance, not sorted. Pure — no cache, recomputed per render.
func GroupByCategory(products []domain.Product) []domain.Group {
	groups := make([]domain.Group, 0)
	index := make(map[int]int, len(products))

	for _, p := range products {
		i, ok := index[p.CategoryID]
		if !ok {
			index[p.CategoryID] = len(groups)
			groups = append(groups, domain.Group{
				CategoryID:   p.CategoryID,
				CategoryName: p.CategoryName,
				Products:     []domain.Product{p},
			})
			continue
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
