package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/internal/domain"
)

func TestVersionRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO versions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	version := &domain.Version{
		ID:          uuid.New(),
		OwnerID:     "user-1",
		PackageID:   uuid.New(),
		TemplateID:  uuid.New(),
		Version:     "0.0.1",
		Template:    "I am looking at the {@OBJECT}",
		LLMProvider: "llama2",
		LLMModel:    "7b",
		LLMConfig:   types.JSONText(`{}`),
	}

	err := repo.Create(context.Background(), version)
	require.NoError(t, err)
	assert.Equal(t, now, version.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	// Чужая или несуществующая запись — одно и то же снаружи
	mock.ExpectQuery(`SELECT \* FROM versions WHERE id = \$1 AND owner_id = \$2`).
		WillReturnRows(sqlmock.NewRows(versionColumns()))

	version, err := repo.GetByID(context.Background(), uuid.New(), "other-user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_GetByLabel(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	templateID := uuid.New()
	versionID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM versions\s+WHERE template_id = \$1 AND owner_id = \$2 AND version = \$3\s+ORDER BY created_at DESC\s+LIMIT 1`).
		WithArgs(templateID, "user-1", "0.0.3").
		WillReturnRows(sqlmock.NewRows(versionColumns()).
			AddRow(versionRow(versionID.String(), "user-1", uuid.NewString(), templateID.String(), "0.0.3", "body", nil)...))

	version, err := repo.GetByLabel(context.Background(), templateID, "user-1", "0.0.3")
	require.NoError(t, err)
	assert.Equal(t, versionID, version.ID)
	assert.Equal(t, "0.0.3", version.Version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_UpdateContent_ScopedByFullTuple(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	// Несовпадение любого поля кортежа даёт пустой результат, а не запись соседа
	mock.ExpectQuery(`UPDATE versions`).
		WillReturnRows(sqlmock.NewRows(versionColumns()))

	content := &domain.VersionContent{
		Template:    "updated",
		LLMProvider: "llama2",
		LLMModel:    "7b",
		LLMConfig:   types.JSONText(`{}`),
	}

	version, err := repo.UpdateContent(context.Background(), uuid.New(), "user-1", uuid.New(), uuid.New(), content)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_UpdateContent(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	versionID := uuid.New()
	templateID := uuid.New()
	packageID := uuid.New()

	mock.ExpectQuery(`UPDATE versions`).
		WillReturnRows(sqlmock.NewRows(versionColumns()).
			AddRow(versionRow(versionID.String(), "user-1", packageID.String(), templateID.String(), "0.0.1", "updated text", nil)...))

	content := &domain.VersionContent{
		Template:    "updated text",
		LLMProvider: "llama2",
		LLMModel:    "7b",
		LLMConfig:   types.JSONText(`{"temperature":0.7}`),
	}

	version, err := repo.UpdateContent(context.Background(), versionID, "user-1", packageID, templateID, content)
	require.NoError(t, err)
	assert.Equal(t, "updated text", version.Template)
	// Публикация при правке содержимого не трогается
	assert.Nil(t, version.PublishedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_List_OrderedNewestFirst(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	packageID := uuid.New()
	templateID := uuid.New()
	newest := uuid.New()
	oldest := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM versions\s+WHERE package_id = \$1 AND template_id = \$2 AND owner_id = \$3\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(versionColumns()).
			AddRow(versionRow(newest.String(), "user-1", packageID.String(), templateID.String(), "0.0.2", "b", nil)...).
			AddRow(versionRow(oldest.String(), "user-1", packageID.String(), templateID.String(), "0.0.1", "a", nil)...))

	versions, err := repo.List(context.Background(), packageID, templateID, "user-1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, newest, versions[0].ID)
	assert.Equal(t, oldest, versions[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepository_Delete_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewVersionRepository(db)

	mock.ExpectExec(`DELETE FROM versions WHERE id = \$1 AND owner_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New(), "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
