package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"promptforge/internal/domain"
)

type PackageRepository struct {
	db *sqlx.DB
}

func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	query := `
        INSERT INTO packages (id, owner_id, name, description)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		pkg.ID,
		pkg.OwnerID,
		pkg.Name,
		pkg.Description,
	).Scan(&pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	return nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Package, error) {
	var pkg domain.Package
	query := `SELECT * FROM packages WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, &pkg, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return &pkg, nil
}

// GetByName ищет пакет по имени в рамках одного владельца
func (r *PackageRepository) GetByName(ctx context.Context, ownerID, name string) (*domain.Package, error) {
	var pkg domain.Package
	query := `SELECT * FROM packages WHERE owner_id = $1 AND name = $2`

	err := r.db.GetContext(ctx, &pkg, query, ownerID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package by name: %w", err)
	}

	return &pkg, nil
}

func (r *PackageRepository) List(ctx context.Context, ownerID string) ([]domain.Package, error) {
	packages := make([]domain.Package, 0)
	query := `SELECT * FROM packages WHERE owner_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &packages, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return packages, nil
}

func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	query := `DELETE FROM packages WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
