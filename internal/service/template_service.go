package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/domain"
	"promptforge/internal/repository"
)

type TemplateService struct {
	templateRepo *repository.TemplateRepository
	packageRepo  *repository.PackageRepository
	versionRepo  *repository.VersionRepository
	logger       *zap.Logger
}

func NewTemplateService(
	templateRepo *repository.TemplateRepository,
	packageRepo *repository.PackageRepository,
	versionRepo *repository.VersionRepository,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		packageRepo:  packageRepo,
		versionRepo:  versionRepo,
		logger:       logger,
	}
}

func (s *TemplateService) Create(ctx context.Context, ownerID string, packageID uuid.UUID, name, description string, modelType domain.ModelType) (*domain.Template, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	if !modelType.Valid() {
		return nil, fmt.Errorf("invalid model type: %q", modelType)
	}

	// Пакет должен существовать и принадлежать вызывающему
	if _, err := s.packageRepo.GetByID(ctx, packageID, ownerID); err != nil {
		return nil, err
	}

	template := &domain.Template{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		PackageID:   packageID,
		Name:        name,
		Description: description,
		ModelType:   modelType,
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("template created",
		zap.String("template_id", template.ID.String()),
		zap.String("package_id", packageID.String()),
		zap.String("name", name))

	return template, nil
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Template, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.templateRepo.GetByID(ctx, id, ownerID)
}

// List возвращает шаблоны пакета вместе со снимками развёрнутых версий
func (s *TemplateService) List(ctx context.Context, packageID uuid.UUID, ownerID string) ([]domain.Template, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	templates, err := s.templateRepo.List(ctx, packageID, ownerID)
	if err != nil {
		return nil, err
	}

	// Собираем идентификаторы версий, на которые указывают слоты окружений
	ids := make([]uuid.UUID, 0, len(templates)*2)
	for _, template := range templates {
		if template.PreviewVersionID != nil {
			ids = append(ids, *template.PreviewVersionID)
		}
		if template.ReleaseVersionID != nil {
			ids = append(ids, *template.ReleaseVersionID)
		}
	}

	versions, err := s.versionRepo.GetByIDs(ctx, ids, ownerID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Version, len(versions))
	for i := range versions {
		byID[versions[i].ID] = &versions[i]
	}

	for i := range templates {
		if id := templates[i].PreviewVersionID; id != nil {
			templates[i].PreviewVersion = byID[*id]
		}
		if id := templates[i].ReleaseVersionID; id != nil {
			templates[i].ReleaseVersion = byID[*id]
		}
	}

	return templates, nil
}

func (s *TemplateService) Update(ctx context.Context, id, packageID uuid.UUID, ownerID, name, description string) (*domain.Template, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.templateRepo.Update(ctx, id, packageID, ownerID, name, description)
}

func (s *TemplateService) Delete(ctx context.Context, id, packageID uuid.UUID, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.templateRepo.Delete(ctx, id, packageID, ownerID); err != nil {
		return err
	}

	s.logger.Info("template deleted",
		zap.String("template_id", id.String()),
		zap.String("package_id", packageID.String()))

	return nil
}
