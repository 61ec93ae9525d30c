package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/cache"
	"promptforge/internal/domain"
	"promptforge/internal/metrics"
	"promptforge/internal/repository"
)

// DeploymentService публикует версию в окружение шаблона. Это единственный
// путь, меняющий указатели окружений.
type DeploymentService struct {
	deployRepo  *repository.DeploymentRepository
	packageRepo *repository.PackageRepository
	cache       *cache.Client
	logger      *zap.Logger
}

func NewDeploymentService(
	deployRepo *repository.DeploymentRepository,
	packageRepo *repository.PackageRepository,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *DeploymentService {
	return &DeploymentService{
		deployRepo:  deployRepo,
		packageRepo: packageRepo,
		cache:       cacheClient,
		logger:      logger,
	}
}

func (s *DeploymentService) Deploy(
	ctx context.Context,
	ownerID string,
	packageID, templateID, versionID uuid.UUID,
	environment domain.Environment,
	changelog string,
) (*domain.Version, *domain.Template, error) {
	if ownerID == "" {
		return nil, nil, domain.ErrUnauthorized
	}

	version, template, err := s.deployRepo.Deploy(ctx, versionID, templateID, packageID, ownerID, environment, changelog)
	if err != nil {
		metrics.DeploymentsTotal.WithLabelValues(string(environment), "failed").Inc()
		return nil, nil, err
	}

	metrics.DeploymentsTotal.WithLabelValues(string(environment), "success").Inc()

	s.logger.Info("version deployed",
		zap.String("version_id", versionID.String()),
		zap.String("template_id", templateID.String()),
		zap.String("environment", string(environment)))

	s.invalidateResolveCache(ctx, ownerID, template, environment)

	return version, template, nil
}

// invalidateResolveCache сбрасывает закэшированный результат резолвинга для
// переключённого слота. Ошибки здесь не фатальны: кэш ограничен TTL.
func (s *DeploymentService) invalidateResolveCache(ctx context.Context, ownerID string, template *domain.Template, environment domain.Environment) {
	if s.cache == nil {
		return
	}

	pkg, err := s.packageRepo.GetByID(ctx, template.PackageID, ownerID)
	if err != nil {
		s.logger.Warn("failed to load package for cache invalidation", zap.Error(err))
		return
	}

	key := resolveCacheKey(ownerID, pkg.Name, template.Name, "env:"+string(environment))
	if err := s.cache.Del(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate resolve cache", zap.String("key", key), zap.Error(err))
	}
}
