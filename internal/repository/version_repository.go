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

type VersionRepository struct {
	db *sqlx.DB
}

func NewVersionRepository(db *sqlx.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

func (r *VersionRepository) Create(ctx context.Context, version *domain.Version) error {
	query := `
        INSERT INTO versions (
            id,
            owner_id,
            package_id,
            template_id,
            version,
            template,
            llm_provider,
            llm_model,
            llm_config,
            forked_from_id,
            changelog
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		version.ID,
		version.OwnerID,
		version.PackageID,
		version.TemplateID,
		version.Version,
		version.Template,
		version.LLMProvider,
		version.LLMModel,
		version.LLMConfig,
		version.ForkedFromID,
		version.Changelog,
	).Scan(&version.CreatedAt, &version.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	return nil
}

func (r *VersionRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Version, error) {
	var version domain.Version
	query := `SELECT * FROM versions WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, &version, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return &version, nil
}

// GetByLabel ищет версию по текстовой метке внутри шаблона. Уникальность меток
// не гарантируется, при дублях берём самую свежую.
func (r *VersionRepository) GetByLabel(ctx context.Context, templateID uuid.UUID, ownerID, label string) (*domain.Version, error) {
	var version domain.Version
	query := `
        SELECT * FROM versions
        WHERE template_id = $1 AND owner_id = $2 AND version = $3
        ORDER BY created_at DESC
        LIMIT 1`

	err := r.db.GetContext(ctx, &version, query, templateID, ownerID, label)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version by label: %w", err)
	}

	return &version, nil
}

// GetByIDs загружает версии по списку идентификаторов для снимков окружений
func (r *VersionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID, ownerID string) ([]domain.Version, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM versions WHERE id IN (?) AND owner_id = ?`, ids, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build versions query: %w", err)
	}

	versions := make([]domain.Version, 0, len(ids))
	err = r.db.SelectContext(ctx, &versions, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get versions by ids: %w", err)
	}

	return versions, nil
}

func (r *VersionRepository) List(ctx context.Context, packageID, templateID uuid.UUID, ownerID string) ([]domain.Version, error) {
	versions := make([]domain.Version, 0)
	query := `
        SELECT * FROM versions
        WHERE package_id = $1 AND template_id = $2 AND owner_id = $3
        ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &versions, query, packageID, templateID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	return versions, nil
}

// UpdateContent перезаписывает содержимое версии. Запись ищется по полному
// кортежу id + владелец + пакет + шаблон, несовпадение любого поля даёт not found.
func (r *VersionRepository) UpdateContent(ctx context.Context, id uuid.UUID, ownerID string, packageID, templateID uuid.UUID, content *domain.VersionContent) (*domain.Version, error) {
	var version domain.Version
	query := `
        UPDATE versions
        SET template = $1,
            llm_provider = $2,
            llm_model = $3,
            llm_config = $4,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $5 AND owner_id = $6 AND package_id = $7 AND template_id = $8
        RETURNING *`

	err := r.db.GetContext(
		ctx,
		&version,
		query,
		content.Template,
		content.LLMProvider,
		content.LLMModel,
		content.LLMConfig,
		id,
		ownerID,
		packageID,
		templateID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update version: %w", err)
	}

	return &version, nil
}

func (r *VersionRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	query := `DELETE FROM versions WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
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
