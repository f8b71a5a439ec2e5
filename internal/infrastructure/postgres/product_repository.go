package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category_id, supplier_id, quantity, initial_quantity,
	reorder_level, price, image_url, version, created_at, updated_at, archived_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. search_key guarda nombre y SKU normalizados para la búsqueda.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, supplier_id, quantity, initial_quantity,
			reorder_level, price, image_url, version, search_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, nullable(p.CategoryID), nullable(p.SupplierID),
		p.Quantity, p.InitialQuantity, p.ReorderLevel, p.Price, p.ImageURL, p.Version,
		searchKey(p), p.CreatedAt, p.UpdatedAt,
	)
	return mapError("insert product", err)
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU. (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza datos descriptivos. Cantidad, versión y archivado no se tocan.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = $4, supplier_id = $5,
			reorder_level = $6, price = $7, image_url = $8, search_key = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, nullable(p.CategoryID), nullable(p.SupplierID),
		p.ReorderLevel, p.Price, p.ImageURL, searchKey(p), p.UpdatedAt,
	)
	if err != nil {
		return mapError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateQuantity compare-and-swap: solo escribe si cantidad y versión siguen siendo las leídas.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, expectedQty, expectedVersion, newQty int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = $4, version = version + 1, updated_at = now()
		WHERE id = $1 AND quantity = $2 AND version = $3`,
		id, expectedQty, expectedVersion, newQty,
	)
	if err != nil {
		return false, mapError("update product quantity", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Archive marca el producto como archivado; el historial se conserva.
func (r *ProductRepo) Archive(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return domain.ErrProductNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET archived_at = $2, updated_at = $2 WHERE id = $1 AND archived_at IS NULL`, id, at)
	if err != nil {
		return mapError("archive product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List busca por texto normalizado (nombre o SKU), categoría y archivado. Orden por nombre e id.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query, args := buildProductQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, mapError("list products", rows.Err())
}

// CountByCategory productos (incluidos archivados) que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	return n, mapError("count products by category", err)
}

// CountBySupplier productos (incluidos archivados) que referencian el proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n)
	return n, mapError("count products by supplier", err)
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return p, nil
}

// buildProductQuery arma el SELECT del catálogo con placeholders posicionales.
func buildProductQuery(f repository.ProductFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE 1=1`)
	if !f.IncludeArchived {
		sb.WriteString(` AND archived_at IS NULL`)
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		fmt.Fprintf(&sb, ` AND category_id = $%d`, len(args))
	}
	if q := textnorm.Fold(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		fmt.Fprintf(&sb, ` AND search_key LIKE $%d`, len(args))
	}
	sb.WriteString(` ORDER BY name ASC, id ASC`)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}
	return sb.String(), args
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                      entity.Product
		categoryID, supplierID *string
	)
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &categoryID, &supplierID, &p.Quantity, &p.InitialQuantity,
		&p.ReorderLevel, &p.Price, &p.ImageURL, &p.Version, &p.CreatedAt, &p.UpdatedAt, &p.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	return &p, nil
}

func searchKey(p *entity.Product) string {
	return textnorm.Fold(p.Name + " " + p.SKU)
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
