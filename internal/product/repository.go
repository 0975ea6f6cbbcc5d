package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByUUID(ctx context.Context, uuid string) (*Product, error)
	ListByStore(ctx context.Context, storeID uint, opts ListOptions) ([]*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)

	CreateVariant(ctx context.Context, v *Variant) (*Variant, error)
	GetVariant(ctx context.Context, uuid string) (*Variant, error)
	ListVariants(ctx context.Context, productID uint) ([]*Variant, error)
	UpdateVariant(ctx context.Context, v *Variant) (*Variant, error)
	DeleteVariant(ctx context.Context, uuid string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, uuid, store_id, category_id, name, slug, description,
	price, stock, status, image_url, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.UUID, &p.StoreID, &p.CategoryID, &p.Name, &p.Slug,
		&p.Description, &p.Price, &p.Stock, &p.Status, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("store_id", p.StoreID),
		zap.String("name", p.Name),
	)
	log.Info("Create product started")

	query := `
		INSERT INTO products (store_id, category_id, name, slug, description, price, stock, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.StoreID, p.CategoryID, p.Name, p.Slug, p.Description,
		p.Price, p.Stock, p.Status, p.ImageURL))
	if err != nil {
		log.Error("Create product DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create product failed: %w", err)
	}

	log.Info("Create product success", zap.String("uuid", created.UUID))
	return created, nil
}

func (r *repository) GetByUUID(ctx context.Context, uuid string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE uuid = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uint, opts ListOptions) ([]*Product, error) {
	finalLimit := int32(20)
	finalPage := int32(1)

	if opts.Limit != nil && *opts.Limit > 0 {
		finalLimit = *opts.Limit
	}
	if opts.Page != nil && *opts.Page > 0 {
		finalPage = *opts.Page
	}
	finalOffset := (finalPage - 1) * finalLimit

	query := `SELECT ` + productColumns + ` FROM products`
	where := []string{"store_id = $1"}
	args := []interface{}{storeID}

	if opts.Search != nil && *opts.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*opts.Search+"%")
	}
	if opts.Status != nil && *opts.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *opts.Status)
	}
	if opts.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *opts.CategoryID)
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

const variantColumns = `id, uuid, product_id, title, option1, option2, option3, sku,
	price, inventory_quantity, is_active, created_at, updated_at`

func scanVariant(row interface{ Scan(...interface{}) error }) (*Variant, error) {
	var v Variant
	err := row.Scan(&v.ID, &v.UUID, &v.ProductID, &v.Title, &v.Option1, &v.Option2,
		&v.Option3, &v.SKU, &v.Price, &v.InventoryQuantity, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) CreateVariant(ctx context.Context, v *Variant) (*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("product_id", v.ProductID),
		zap.String("title", v.Title),
	)

	query := `
		INSERT INTO product_variants (product_id, title, option1, option2, option3, sku, price, inventory_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + variantColumns

	created, err := scanVariant(r.db.QueryRowContext(ctx, query,
		v.ProductID, v.Title, v.Option1, v.Option2, v.Option3,
		v.SKU, v.Price, v.InventoryQuantity, v.IsActive))
	if err != nil {
		log.Error("Create variant DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create variant failed: %w", err)
	}

	log.Info("Create variant success", zap.String("uuid", created.UUID))
	return created, nil
}

// GetVariant also resolves the owning product's store so callers can run
// ownership checks without a second query.
func (r *repository) GetVariant(ctx context.Context, uuid string) (*Variant, error) {
	query := `
		SELECT v.id, v.uuid, v.product_id, v.title, v.option1, v.option2, v.option3, v.sku,
			v.price, v.inventory_quantity, v.is_active, v.created_at, v.updated_at, p.store_id
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.uuid = $1`

	var v Variant
	err := r.db.QueryRowContext(ctx, query, uuid).Scan(
		&v.ID, &v.UUID, &v.ProductID, &v.Title, &v.Option1, &v.Option2,
		&v.Option3, &v.SKU, &v.Price, &v.InventoryQuantity, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt, &v.StoreID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) ListVariants(ctx context.Context, productID uint) ([]*Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	variants := make([]*Variant, 0)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return variants, nil
}

func (r *repository) UpdateVariant(ctx context.Context, v *Variant) (*Variant, error) {
	query := `
		UPDATE product_variants
		SET title = $1, option1 = $2, option2 = $3, option3 = $4, sku = $5,
			price = $6, inventory_quantity = $7, is_active = $8, updated_at = NOW()
		WHERE uuid = $9
		RETURNING ` + variantColumns

	updated, err := scanVariant(r.db.QueryRowContext(ctx, query,
		v.Title, v.Option1, v.Option2, v.Option3, v.SKU,
		v.Price, v.InventoryQuantity, v.IsActive, v.UUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update variant failed: %w", err)
	}

	return updated, nil
}

func (r *repository) DeleteVariant(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_variants WHERE uuid = $1`, uuid)
	if err != nil {
		return fmt.Errorf("delete variant failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, status = $5,
			category_id = $6, image_url = $7, updated_at = NOW()
		WHERE uuid = $8
		RETURNING ` + productColumns

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.Status,
		p.CategoryID, p.ImageURL, p.UUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product failed: %w", err)
	}

	return updated, nil
}
