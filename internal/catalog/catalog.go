// Package catalog persists the product collection as one serialized
// blob under a fixed key and derives filtered views from it.
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/kkozlov/catalogcore/internal/model"
)

// StorageKey is the fixed key the whole collection is stored under.
const StorageKey = "products"

// ErrNotFound is returned when an operation references a product id
// that is not in the collection.
var ErrNotFound = errors.New("product not found")

// Filter returns the ordered subsequence of products whose name
// contains query as a case-insensitive substring. An empty query
// returns the input unchanged. The function is pure: the result is
// fully determined by its two inputs.
func Filter(products []model.Product, query string) []model.Product {
	if query == "" {
		return products
	}

	needle := strings.ToLower(query)
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}

	return matched
}

// IndexOf returns the position of the product with the given id, or -1.
func IndexOf(products []model.Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// MintID derives a fresh id from the current timestamp, bumping past
// any id already present so uniqueness holds even when several
// products are created within the same millisecond.
func MintID(products []model.Product, now time.Time) int64 {
	id := now.UnixMilli()
	if id < 1 {
		id = 1
	}

	for IndexOf(products, id) >= 0 {
		id++
	}

	return id
}
