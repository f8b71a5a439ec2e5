package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/application/usecase"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
)

func newProducts(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), store.Categories(), store.Suppliers()), store
}

func createReq(sku, name string, qty int64) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:          sku,
		Name:         name,
		Quantity:     qty,
		ReorderLevel: 5,
		Price:        decimal.RequireFromString("1250.456"),
	}
}

func TestProductCreate_NormalizaSKUyGuardaStockInicial(t *testing.T) {
	uc, _ := newProducts(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, createReq("  caf-100 ", "Café molido", 12))
	require.NoError(t, err)
	assert.Equal(t, "CAF-100", p.SKU)
	assert.Equal(t, int64(12), p.Quantity)
	assert.Equal(t, int64(12), p.InitialQuantity)
	assert.True(t, decimal.RequireFromString("1250.46").Equal(p.Price))
	assert.False(t, p.LowStock)

	_, err = uc.Create(ctx, createReq("CAF-100", "Otro", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_EntradasInvalidas(t *testing.T) {
	uc, _ := newProducts(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, createReq("", "Sin SKU", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, createReq("X-1", "Negativo", -1))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req := createReq("X-2", "Categoría fantasma", 1)
	req.CategoryID = uuid.New().String()
	_, err = uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaCantidad(t *testing.T) {
	uc, store := newProducts(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, createReq("TE-1", "Té verde", 8))
	require.NoError(t, err)

	// Un movimiento concurrente cambia la cantidad entre la lectura y el update.
	ok, err := store.Products().UpdateQuantity(ctx, p.ID, 8, 0, 3)
	require.NoError(t, err)
	require.True(t, ok)

	name := "Té verde orgánico"
	reorder := int64(4)
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, ReorderLevel: &reorder})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(3), updated.Quantity)
	assert.True(t, updated.LowStock)
}

func TestProductArchive_IdempotenteYBloqueaUpdate(t *testing.T) {
	uc, _ := newProducts(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, createReq("AR-1", "Arroz", 2))
	require.NoError(t, err)

	require.NoError(t, uc.Archive(ctx, p.ID))
	require.NoError(t, uc.Archive(ctx, p.ID))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)

	name := "Arroz integral"
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, uc.Archive(ctx, uuid.New().String()), domain.ErrProductNotFound)
}

func TestProductSearch_TextoSinAcentosYArchivados(t *testing.T) {
	uc, _ := newProducts(t)
	ctx := context.Background()
	cafe, err := uc.Create(ctx, createReq("CAF-1", "Café de Colombia", 1))
	require.NoError(t, err)
	_, err = uc.Create(ctx, createReq("AZU-1", "Azúcar", 1))
	require.NoError(t, err)
	require.NoError(t, uc.Archive(ctx, cafe.ID))

	res, err := uc.Search(ctx, dto.ProductSearchRequest{Query: "cafe"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = uc.Search(ctx, dto.ProductSearchRequest{Query: "cafe", IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, cafe.ID, res.Items[0].ID)
	assert.Equal(t, 20, res.Page.Limit)
}
