// internal/listview/view.go
package listview

import (
	"context"
	"strings"
	"sync"

	"github.com/jrvaldez/product-catalog/internal/models"
)

// DefaultPageSize and PageSizeOptions mirror the catalog page selector.
const DefaultPageSize = 5

var PageSizeOptions = []int{5, 10, 25, 50}

// Catalog is the slice of the repository the view needs.
type Catalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id string) (*models.APIResult, error)
}

// View holds the fetched catalog and an in-memory filter over it: a
// case-insensitive substring match on name and description, truncated to
// the page size.
type View struct {
	mu sync.Mutex

	catalog  Catalog
	products []models.Product
	filter   string
	pageSize int
}

func NewView(catalog Catalog) *View {
	return &View{
		catalog:  catalog,
		pageSize: DefaultPageSize,
	}
}

func (v *View) Load(ctx context.Context) error {
	products, err := v.catalog.List(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.products = products
	return nil
}

func (v *View) SetFilter(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = text
}

func (v *View) SetPageSize(size int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if size > 0 {
		v.pageSize = size
	}
}

func (v *View) PageSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageSize
}

// Visible returns the filtered slice truncated to the page size.
func (v *View) Visible() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := v.filteredLocked()
	if len(filtered) > v.pageSize {
		filtered = filtered[:v.pageSize]
	}
	return filtered
}

// FilteredCount returns how many products match the filter before the
// page-size cut.
func (v *View) FilteredCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.filteredLocked())
}

func (v *View) filteredLocked() []models.Product {
	text := strings.ToLower(v.filter)

	filtered := make([]models.Product, 0, len(v.products))
	for _, p := range v.products {
		if text == "" ||
			strings.Contains(strings.ToLower(p.Name), text) ||
			strings.Contains(strings.ToLower(p.Description), text) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Delete removes the product from the backend and, on success, from the
// in-memory catalog.
func (v *View) Delete(ctx context.Context, id string) (*models.APIResult, error) {
	result, err := v.catalog.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i, p := range v.products {
		if p.ID == id {
			v.products = append(v.products[:i], v.products[i+1:]...)
			break
		}
	}
	return result, nil
}
