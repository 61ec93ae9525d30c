package domain

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"time"
)

type Version struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	OwnerID      string         `json:"owner_id" db:"owner_id"`
	PackageID    uuid.UUID      `json:"package_id" db:"package_id"`
	TemplateID   uuid.UUID      `json:"template_id" db:"template_id"`
	Version      string         `json:"version" db:"version"`
	Template     string         `json:"template" db:"template"`
	LLMProvider  string         `json:"llm_provider" db:"llm_provider"`
	LLMModel     string         `json:"llm_model" db:"llm_model"`
	LLMConfig    types.JSONText `json:"llm_config" db:"llm_config"`
	ForkedFromID *uuid.UUID     `json:"forked_from_id,omitempty" db:"forked_from_id"`
	Changelog    string         `json:"changelog" db:"changelog"`
	PublishedAt  *time.Time     `json:"published_at,omitempty" db:"published_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// VersionContent содержит изменяемые поля версии до её публикации
type VersionContent struct {
	Template    string         `json:"template"`
	LLMProvider string         `json:"llm_provider"`
	LLMModel    string         `json:"llm_model"`
	LLMConfig   types.JSONText `json:"llm_config"`
}
