package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"promptforge/internal/domain"
	"promptforge/internal/metrics"
	"promptforge/internal/repository"
)

type VersionService struct {
	versionRepo  *repository.VersionRepository
	templateRepo *repository.TemplateRepository
	logger       *zap.Logger
}

func NewVersionService(
	versionRepo *repository.VersionRepository,
	templateRepo *repository.TemplateRepository,
	logger *zap.Logger,
) *VersionService {
	return &VersionService{
		versionRepo:  versionRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// defaultContent подбирает стартовое содержимое версии по типу модели
func defaultContent(modelType domain.ModelType) domain.VersionContent {
	if modelType == domain.ModelTypeText2Text {
		return domain.VersionContent{
			Template:    "I am looking at the {@OBJECT}",
			LLMProvider: "llama2",
			LLMModel:    "7b",
			LLMConfig:   types.JSONText(`{}`),
		}
	}

	return domain.VersionContent{
		Template:    "A photo of an astronaut riding a horse on {@OBJECT}",
		LLMProvider: "runwayml",
		LLMModel:    "stable-diffusion-v1-5",
		LLMConfig:   types.JSONText(`{}`),
	}
}

// Create создаёт новую версию шаблона. Если указан родитель форка, содержимое
// копируется из него на момент вызова, иначе синтезируется по типу модели.
func (s *VersionService) Create(ctx context.Context, ownerID string, packageID, templateID uuid.UUID, label string, modelType domain.ModelType, forkedFromID *uuid.UUID) (*domain.Version, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	if !modelType.Valid() {
		return nil, fmt.Errorf("invalid model type: %q", modelType)
	}

	// Тройка пакет/шаблон/версия должна быть согласованной
	template, err := s.templateRepo.GetByID(ctx, templateID, ownerID)
	if err != nil {
		return nil, err
	}
	if template.PackageID != packageID {
		return nil, domain.ErrNotFound
	}

	content := defaultContent(modelType)

	if forkedFromID != nil {
		// Родитель форка ищется только среди версий того же владельца
		parent, err := s.versionRepo.GetByID(ctx, *forkedFromID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load fork parent: %w", err)
		}

		content.Template = parent.Template
		content.LLMProvider = parent.LLMProvider
		content.LLMModel = parent.LLMModel
		content.LLMConfig = parent.LLMConfig
	}

	version := &domain.Version{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PackageID:    packageID,
		TemplateID:   templateID,
		Version:      label,
		Template:     content.Template,
		LLMProvider:  content.LLMProvider,
		LLMModel:     content.LLMModel,
		LLMConfig:    content.LLMConfig,
		ForkedFromID: forkedFromID,
		Changelog:    "",
	}

	if err := s.versionRepo.Create(ctx, version); err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	metrics.VersionsCreatedTotal.WithLabelValues(string(modelType)).Inc()

	s.logger.Info("version created",
		zap.String("version_id", version.ID.String()),
		zap.String("template_id", templateID.String()),
		zap.String("label", label),
		zap.Bool("forked", forkedFromID != nil))

	return version, nil
}

func (s *VersionService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Version, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.versionRepo.GetByID(ctx, id, ownerID)
}

func (s *VersionService) List(ctx context.Context, packageID, templateID uuid.UUID, ownerID string) ([]domain.Version, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.versionRepo.List(ctx, packageID, templateID, ownerID)
}

// UpdateContent перезаписывает содержимое версии. Отметку о публикации и
// changelog эта операция не трогает.
func (s *VersionService) UpdateContent(ctx context.Context, id uuid.UUID, ownerID string, packageID, templateID uuid.UUID, content *domain.VersionContent) (*domain.Version, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.versionRepo.UpdateContent(ctx, id, ownerID, packageID, templateID, content)
}

// Delete удаляет версию. Указатели окружений на шаблоне обнуляются на уровне
// схемы, шаблон при этом остаётся в состоянии "не развёрнуто".
func (s *VersionService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.versionRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info("version deleted",
		zap.String("version_id", id.String()),
		zap.String("owner_id", ownerID))

	return nil
}
