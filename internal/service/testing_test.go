package service

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func now() time.Time {
	return time.Now()
}

func packageColumns() []string {
	return []string{"id", "owner_id", "name", "description", "created_at", "updated_at"}
}

func packageRow(id, ownerID, name string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, ownerID, name, "", now, now}
}

func templateColumns() []string {
	return []string{
		"id", "owner_id", "package_id", "name", "description", "model_type",
		"preview_version_id", "release_version_id", "created_at", "updated_at",
	}
}

func templateRow(id, ownerID, packageID, name string, previewID, releaseID *uuid.UUID) []driver.Value {
	now := time.Now()
	var preview, release driver.Value
	if previewID != nil {
		preview = previewID.String()
	}
	if releaseID != nil {
		release = releaseID.String()
	}
	return []driver.Value{
		id, ownerID, packageID, name, "", "TEXT2TEXT",
		preview, release, now, now,
	}
}

func versionColumns() []string {
	return []string{
		"id", "owner_id", "package_id", "template_id", "version", "template",
		"llm_provider", "llm_model", "llm_config", "forked_from_id",
		"changelog", "published_at", "created_at", "updated_at",
	}
}

func versionRow(id, ownerID, packageID, templateID, label, body, provider, model, cfg string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, ownerID, packageID, templateID, label, body,
		provider, model, []byte(cfg), nil,
		"", nil, now, now,
	}
}

func versionRowPublished(id, ownerID, packageID, templateID, label string, publishedAt time.Time) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, ownerID, packageID, templateID, label, "body",
		"llama2", "7b", []byte(`{}`), nil,
		"", publishedAt, now, now,
	}
}
