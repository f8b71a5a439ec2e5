package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/pkg/textnorm"
)

// ProductUseCase casos de uso del catálogo. La cantidad solo cambia vía movimientos del ledger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un producto. La cantidad enviada queda como stock inicial del historial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := textnorm.SKU(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkReferences(ctx, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             sku,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		Quantity:        in.Quantity,
		InitialQuantity: in.Quantity,
		ReorderLevel:    in.ReorderLevel,
		Price:           in.Price.Round(2),
		ImageURL:        in.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto (incluidos archivados).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update modifica datos descriptivos. No permite cambiar cantidad ni SKU.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsArchived() {
		return nil, fmt.Errorf("%w: producto archivado", domain.ErrConflict)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		product.Price = in.Price.Round(2)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if err := uc.checkReferences(ctx, product.CategoryID, product.SupplierID); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// Releer: la cantidad pudo cambiar por movimientos concurrentes y Update no la toca.
	return uc.GetByID(ctx, id)
}

// Archive retira el producto del catálogo activo; su historial se conserva.
func (uc *ProductUseCase) Archive(ctx context.Context, id string) error {
	product, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if product.IsArchived() {
		return nil
	}
	return uc.repo.Archive(ctx, id, time.Now().UTC())
}

// Search lista productos por texto (nombre o SKU), categoría y archivado, con paginación.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.ProductSearchRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Query:           strings.TrimSpace(in.Query),
		CategoryID:      in.CategoryID,
		IncludeArchived: in.IncludeArchived,
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, categoryID, supplierID string) error {
	if categoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: categoría %s no existe", domain.ErrInvalidInput, categoryID)
		}
	}
	if supplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, supplierID)
		}
	}
	return nil
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		Quantity:        p.Quantity,
		InitialQuantity: p.InitialQuantity,
		ReorderLevel:    p.ReorderLevel,
		Price:           p.Price,
		ImageURL:        p.ImageURL,
		LowStock:        p.IsLowStock(),
		OutOfStock:      p.IsOutOfStock(),
		Archived:        p.IsArchived(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
