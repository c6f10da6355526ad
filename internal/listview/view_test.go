// internal/listview/view_test.go
package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrvaldez/product-catalog/internal/models"
)

type fakeCatalog struct {
	products  []models.Product
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeCatalog) List(ctx context.Context) ([]models.Product, error) {
	return f.products, f.listErr
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) (*models.APIResult, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return &models.APIResult{Message: "Product removed successfully"}, nil
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: "TRJ-001", Name: "Tarjeta Crédito", Description: "Tarjeta de consumo con cupo"},
		{ID: "AHO-002", Name: "Cuenta Ahorros", Description: "Cuenta con interés mensual"},
		{ID: "CRE-003", Name: "Crédito Hipotecario", Description: "Financiamiento de vivienda"},
		{ID: "SEG-004", Name: "Seguro de Vida", Description: "Cobertura por fallecimiento"},
		{ID: "INV-005", Name: "Fondo de Inversión", Description: "Portafolio diversificado"},
		{ID: "DEP-006", Name: "Depósito a Plazo", Description: "Tasa fija garantizada"},
	}
}

func TestLoadAndVisibleTruncatesToPageSize(t *testing.T) {
	v := NewView(&fakeCatalog{products: seedProducts()})
	require.NoError(t, v.Load(context.Background()))

	assert.Len(t, v.Visible(), DefaultPageSize)
	assert.Equal(t, 6, v.FilteredCount())

	v.SetPageSize(10)
	assert.Len(t, v.Visible(), 6)
}

func TestFilterIsCaseInsensitiveOverNameAndDescription(t *testing.T) {
	v := NewView(&fakeCatalog{products: seedProducts()})
	require.NoError(t, v.Load(context.Background()))

	v.SetFilter("crédito")
	visible := v.Visible()
	require.Len(t, visible, 2) // matches name "Tarjeta Crédito" and "Crédito Hipotecario"

	v.SetFilter("VIVIENDA")
	visible = v.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "CRE-003", visible[0].ID)

	v.SetFilter("no-match")
	assert.Empty(t, v.Visible())

	v.SetFilter("")
	assert.Equal(t, 6, v.FilteredCount())
}

func TestSetPageSizeIgnoresNonPositive(t *testing.T) {
	v := NewView(&fakeCatalog{products: seedProducts()})
	v.SetPageSize(0)
	assert.Equal(t, DefaultPageSize, v.PageSize())
	v.SetPageSize(-3)
	assert.Equal(t, DefaultPageSize, v.PageSize())
}

func TestLoadError(t *testing.T) {
	v := NewView(&fakeCatalog{listErr: errors.New("boom")})
	assert.Error(t, v.Load(context.Background()))
	assert.Empty(t, v.Visible())
}

func TestDeleteRemovesFromBackendAndMemory(t *testing.T) {
	catalog := &fakeCatalog{products: seedProducts()}
	v := NewView(catalog)
	require.NoError(t, v.Load(context.Background()))

	result, err := v.Delete(context.Background(), "AHO-002")
	require.NoError(t, err)
	assert.Equal(t, "Product removed successfully", result.Message)
	assert.Equal(t, []string{"AHO-002"}, catalog.deleted)
	assert.Equal(t, 5, v.FilteredCount())

	for _, p := range v.Visible() {
		assert.NotEqual(t, "AHO-002", p.ID)
	}
}

func TestDeleteFailureKeepsMemory(t *testing.T) {
	catalog := &fakeCatalog{products: seedProducts(), deleteErr: errors.New("backend down")}
	v := NewView(catalog)
	require.NoError(t, v.Load(context.Background()))

	_, err := v.Delete(context.Background(), "AHO-002")
	require.Error(t, err)
	assert.Equal(t, 6, v.FilteredCount())
}
