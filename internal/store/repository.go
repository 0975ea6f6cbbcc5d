package store

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
	Create(ctx context.Context, s *Store) (*Store, error)
	GetByID(ctx context.Context, id uint) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Store, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const storeColumns = "id, uuid, owner_id, name, slug, description, status, created_at, updated_at"

func scanStore(row interface{ Scan(...interface{}) error }) (*Store, error) {
	var s Store
	err := row.Scan(&s.ID, &s.UUID, &s.OwnerID, &s.Name, &s.Slug,
		&s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Store) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("slug", s.Slug),
		zap.Uint("owner_id", s.OwnerID),
	)
	log.Info("Create store started")

	query := `
		INSERT INTO stores (owner_id, name, slug, description, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING ` + storeColumns

	created, err := scanStore(r.db.QueryRowContext(ctx, query,
		s.OwnerID, s.Name, s.Slug, s.Description))
	if err != nil {
		if strings.Contains(err.Error(), "stores_slug_key") {
			return nil, ErrSlugTaken
		}
		log.Error("Create store DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create store failed: %w", err)
	}

	log.Info("Create store success", zap.Uint("store_id", created.ID))
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	s, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE slug = $1`

	s, err := scanStore(r.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uint) ([]*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	stores := []*Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stores, nil
}
