// Package catalog filters the fetched product set. Filtering happens over
// the already-loaded list, never in SQL, so one authoritative read feeds
// every view of it.
package catalog

import (
	"strings"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

// Filter applies the category filter then the search filter, in that
// order. categoryID 0 means "show all". The search term matches
// case-insensitively against name, description and category name.
func Filter(products []domain.Product, categoryID int64, search string) []domain.Product {
	byCategory := products
	if categoryID != 0 {
		byCategory = make([]domain.Product, 0, len(products))
		for _, p := range products {
			if p.CategoryID != nil && *p.CategoryID == categoryID {
				byCategory = append(byCategory, p)
			}
		}
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return byCategory
	}
	out := make([]domain.Product, 0, len(byCategory))
	for _, p := range byCategory {
		if matches(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term) {
		return true
	}
	if p.Category != nil && strings.Contains(strings.ToLower(p.Category.Name), term) {
		return true
	}
	return false
}
