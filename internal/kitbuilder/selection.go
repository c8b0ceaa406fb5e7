// Package kitbuilder holds the kit builder's selection state: a mapping
// from product id to quantity. Absence of a key means "not selected".
package kitbuilder

import (
	"math"
	"sort"

	"github.com/spf13/cast"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

// Clamp normalizes a raw quantity input: numeric, floored, minimum 1.
// Non-numeric or <=0 input snaps to 1.
func Clamp(raw interface{}) int {
	n, err := cast.ToFloat64E(raw)
	if err != nil || n == 0 {
		n = 1
	}
	q := int(math.Floor(n))
	if q < 1 {
		q = 1
	}
	return q
}

// Selection maps productId -> quantity.
type Selection map[int64]int

// FromItems seeds a selection from a kit's stored items (edit variant).
func FromItems(items []domain.KitItem) Selection {
	sel := Selection{}
	for _, it := range items {
		sel[it.ProductID] = it.Quantity
	}
	return sel
}

// Toggle selects or deselects a product. Selecting keeps a prior quantity
// or seeds 1; deselecting removes the key entirely, so a later re-select
// starts over at 1.
func (s Selection) Toggle(productID int64, checked bool) {
	if checked {
		if _, ok := s[productID]; !ok {
			s[productID] = 1
		}
		return
	}
	delete(s, productID)
}

// SetQuantity stores a clamped quantity for a selected product.
func (s Selection) SetQuantity(productID int64, raw interface{}) {
	s[productID] = Clamp(raw)
}

// Quantity returns the quantity for a product, 1 when unselected, for
// picker rendering.
func (s Selection) Quantity(productID int64) int {
	if q, ok := s[productID]; ok {
		return q
	}
	return 1
}

// Selected reports whether a product is part of the kit.
func (s Selection) Selected(productID int64) bool {
	_, ok := s[productID]
	return ok
}

// Items converts the mapping into an ordered item list for submission.
// Ordering is by product id so repeated submissions are stable.
func (s Selection) Items() []domain.KitItem {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := make([]domain.KitItem, 0, len(ids))
	for i, id := range ids {
		items = append(items, domain.KitItem{ProductID: id, Quantity: s[id], Sort: i})
	}
	return items
}
