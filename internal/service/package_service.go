package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/domain"
	"promptforge/internal/repository"
)

type PackageService struct {
	packageRepo *repository.PackageRepository
	logger      *zap.Logger
}

func NewPackageService(packageRepo *repository.PackageRepository, logger *zap.Logger) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (s *PackageService) Create(ctx context.Context, ownerID, name, description string) (*domain.Package, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	pkg := &domain.Package{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.logger.Info("package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("owner_id", ownerID),
		zap.String("name", name))

	return pkg, nil
}

func (s *PackageService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Package, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.packageRepo.GetByID(ctx, id, ownerID)
}

func (s *PackageService) List(ctx context.Context, ownerID string) ([]domain.Package, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	return s.packageRepo.List(ctx, ownerID)
}

// Delete удаляет пакет вместе с шаблонами и версиями внутри него
func (s *PackageService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.packageRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info("package deleted",
		zap.String("package_id", id.String()),
		zap.String("owner_id", ownerID))

	return nil
}
