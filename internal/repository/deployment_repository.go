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

// DeploymentRepository выполняет публикацию версии: отметка о публикации на
// версии и переключение указателя окружения на шаблоне происходят в одной
// транзакции, частичный результат снаружи не виден.
type DeploymentRepository struct {
	db *sqlx.DB
}

func NewDeploymentRepository(db *sqlx.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

func (r *DeploymentRepository) Deploy(
	ctx context.Context,
	versionID, templateID, packageID uuid.UUID,
	ownerID string,
	environment domain.Environment,
	changelog string,
) (*domain.Version, *domain.Template, error) {
	column, err := environment.SlotColumn()
	if err != nil {
		return nil, nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Отмечаем версию как опубликованную и фиксируем changelog
	var version domain.Version
	versionQuery := `
        UPDATE versions
        SET published_at = CURRENT_TIMESTAMP,
            changelog = $1,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $2 AND owner_id = $3 AND package_id = $4 AND template_id = $5
        RETURNING *`

	err = tx.GetContext(ctx, &version, versionQuery, changelog, versionID, ownerID, packageID, templateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to publish version: %w", err)
	}

	// Переключаем указатель окружения на шаблоне. Колонка берётся из
	// фиксированного набора, подстановки пользовательских данных здесь нет.
	var template domain.Template
	templateQuery := fmt.Sprintf(`
        UPDATE templates
        SET %s = $1,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $2 AND package_id = $3 AND owner_id = $4
        RETURNING *`, column)

	err = tx.GetContext(ctx, &template, templateQuery, versionID, templateID, packageID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update template slot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit deployment: %w", err)
	}

	return &version, &template, nil
}
