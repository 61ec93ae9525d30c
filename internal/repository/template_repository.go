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

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *domain.Template) error {
	query := `
        INSERT INTO templates (id, owner_id, package_id, name, description, model_type)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		template.ID,
		template.OwnerID,
		template.PackageID,
		template.Name,
		template.Description,
		template.ModelType,
	).Scan(&template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Template, error) {
	var template domain.Template
	query := `SELECT * FROM templates WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, &template, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// GetByName ищет шаблон по имени внутри пакета
func (r *TemplateRepository) GetByName(ctx context.Context, packageID uuid.UUID, name, ownerID string) (*domain.Template, error) {
	var template domain.Template
	query := `SELECT * FROM templates WHERE package_id = $1 AND name = $2 AND owner_id = $3`

	err := r.db.GetContext(ctx, &template, query, packageID, name, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template by name: %w", err)
	}

	return &template, nil
}

func (r *TemplateRepository) List(ctx context.Context, packageID uuid.UUID, ownerID string) ([]domain.Template, error) {
	templates := make([]domain.Template, 0)
	query := `SELECT * FROM templates WHERE package_id = $1 AND owner_id = $2 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &templates, query, packageID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// Update меняет имя и описание шаблона. Тип модели и пакет после создания не меняются.
func (r *TemplateRepository) Update(ctx context.Context, id, packageID uuid.UUID, ownerID, name, description string) (*domain.Template, error) {
	var template domain.Template
	query := `
        UPDATE templates
        SET name = $1,
            description = $2,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $3 AND package_id = $4 AND owner_id = $5
        RETURNING *`

	err := r.db.GetContext(ctx, &template, query, name, description, id, packageID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return &template, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id, packageID uuid.UUID, ownerID string) error {
	query := `DELETE FROM templates WHERE id = $1 AND package_id = $2 AND owner_id = $3`

	result, err := r.db.ExecContext(ctx, query, id, packageID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
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
