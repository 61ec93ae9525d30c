package domain

import (
	"github.com/google/uuid"
	"time"
)

type ModelType string

const (
	ModelTypeText2Text  ModelType = "TEXT2TEXT"
	ModelTypeText2Image ModelType = "TEXT2IMAGE"
)

// Valid проверяет, что тип модели известен
func (m ModelType) Valid() bool {
	return m == ModelTypeText2Text || m == ModelTypeText2Image
}

type Template struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	OwnerID          string     `json:"owner_id" db:"owner_id"`
	PackageID        uuid.UUID  `json:"package_id" db:"package_id"`
	Name             string     `json:"name" db:"name"`
	Description      string     `json:"description" db:"description"`
	ModelType        ModelType  `json:"model_type" db:"model_type"`
	PreviewVersionID *uuid.UUID `json:"preview_version_id,omitempty" db:"preview_version_id"`
	ReleaseVersionID *uuid.UUID `json:"release_version_id,omitempty" db:"release_version_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	// Снимки текущих развёрнутых версий, заполняются сервисом при выдаче списка
	PreviewVersion *Version `json:"preview_version,omitempty" db:"-"`
	ReleaseVersion *Version `json:"release_version,omitempty" db:"-"`
}
