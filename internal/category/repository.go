package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	GetCategories(ctx context.Context, storeID uint, filter *string, limit, page *int32) ([]*Category, error)
	AddCategory(ctx context.Context, storeID uint, name, slug string) (*Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(
	ctx context.Context,
	storeID uint,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, error) {

	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.Uint("store_id", storeID),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)
	log.Info("GetCategories started")

	query := `
		SELECT
			c.id,
			c.store_id,
			c.name,
			c.slug
		FROM categories c
	`

	where := []string{"c.store_id = $1"}
	args := []interface{}{storeID}

	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY c.name ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0, finalLimit)

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Slug); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) AddCategory(
	ctx context.Context,
	storeID uint,
	name string,
	slug string,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.Uint("store_id", storeID),
		zap.String("category_name", name),
	)
	log.Info("AddCategory started")

	if name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, errors.New("category name cannot be empty")
	}

	query := `
		INSERT INTO categories (store_id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING id, store_id, name, slug
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, storeID, name, slug).
		Scan(&c.ID, &c.StoreID, &c.Name, &c.Slug)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.Uint("category_id", c.ID))
	return &c, nil
}

func (r *repository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	query := `SELECT id, store_id, name, slug FROM categories WHERE id = $1`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.StoreID, &c.Name, &c.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}
