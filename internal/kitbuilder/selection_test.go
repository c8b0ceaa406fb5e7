package kitbuilder

import (
	"testing"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{5, 5},
		{"5", 5},
		{"3.9", 3},
		{2.7, 2},
		{1, 1},
		{0, 1},
		{-4, 1},
		{"-4", 1},
		{"", 1},
		{"abc", 1},
		{nil, 1},
		{"0.5", 1},
	}
	for _, tc := range cases {
		if got := Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToggleSeedsAndPreserves(t *testing.T) {
	sel := Selection{}

	sel.Toggle(7, true)
	if sel[7] != 1 {
		t.Fatalf("first select should seed quantity 1, got %d", sel[7])
	}

	sel.SetQuantity(7, "4")
	sel.Toggle(7, true)
	if sel[7] != 4 {
		t.Fatalf("re-toggling on must preserve prior quantity, got %d", sel[7])
	}
}

func TestDeselectForgetsQuantity(t *testing.T) {
	sel := Selection{}
	sel.Toggle(3, true)
	sel.SetQuantity(3, 9)

	sel.Toggle(3, false)
	if sel.Selected(3) {
		t.Fatal("deselect must remove the key")
	}

	sel.Toggle(3, true)
	if sel[3] != 1 {
		t.Fatalf("re-select after deselect must reset to 1, got %d", sel[3])
	}
}

func TestQuantityDefaultsToOneWhenUnselected(t *testing.T) {
	sel := Selection{}
	if got := sel.Quantity(42); got != 1 {
		t.Fatalf("unselected quantity = %d, want 1", got)
	}
}

func TestItemsOrderedAndComplete(t *testing.T) {
	sel := Selection{}
	sel.Toggle(9, true)
	sel.Toggle(2, true)
	sel.SetQuantity(2, 3)
	sel.Toggle(5, true)

	items := sel.Items()
	if len(items) != 3 {
		t.Fatalf("items length = %d, want 3", len(items))
	}
	wantIDs := []int64{2, 5, 9}
	wantQty := []int{3, 1, 1}
	for i, it := range items {
		if it.ProductID != wantIDs[i] || it.Quantity != wantQty[i] || it.Sort != i {
			t.Errorf("item %d = {product %d, qty %d, sort %d}, want {product %d, qty %d, sort %d}",
				i, it.ProductID, it.Quantity, it.Sort, wantIDs[i], wantQty[i], i)
		}
	}
}

func TestFromItemsRoundTrip(t *testing.T) {
	items := []domain.KitItem{
		{ProductID: 3, Quantity: 2, Sort: 0},
		{ProductID: 8, Quantity: 5, Sort: 1},
	}
	sel := FromItems(items)
	if len(sel) != 2 || sel[3] != 2 || sel[8] != 5 {
		t.Fatalf("FromItems = %v, want {3:2 8:5}", sel)
	}
}
