package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/cache"
	"promptforge/internal/domain"
	"promptforge/internal/metrics"
	"promptforge/internal/repository"
)

func resolveCacheKey(ownerID, packageName, templateName, selector string) string {
	return fmt.Sprintf("prompt:%s:%s:%s:%s", ownerID, packageName, templateName, selector)
}

// ResolveService превращает человекочитаемый адрес пакет/шаблон в конкретную
// версию для генерации. Горячий путь, поэтому результат кэшируется в Redis.
type ResolveService struct {
	packageRepo  *repository.PackageRepository
	templateRepo *repository.TemplateRepository
	versionRepo  *repository.VersionRepository
	cache        *cache.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewResolveService(
	packageRepo *repository.PackageRepository,
	templateRepo *repository.TemplateRepository,
	versionRepo *repository.VersionRepository,
	cacheClient *cache.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ResolveService {
	return &ResolveService{
		packageRepo:  packageRepo,
		templateRepo: templateRepo,
		versionRepo:  versionRepo,
		cache:        cacheClient,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Resolve находит версию по имени пакета и шаблона. Явная метка версии имеет
// приоритет над окружением; без того и другого берётся release.
func (s *ResolveService) Resolve(ctx context.Context, ownerID, packageName, templateName, versionLabel, environment string) (*domain.Version, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	// Метки и окружения живут в разных пространствах ключей: версия с меткой
	// "release" не должна делить кэш со слотом release
	selector := "label:" + versionLabel
	var env domain.Environment
	if versionLabel == "" {
		if environment == "" {
			environment = string(domain.EnvironmentRelease)
		}

		parsed, err := domain.ParseEnvironment(environment)
		if err != nil {
			return nil, err
		}
		env = parsed
		selector = "env:" + string(env)
	}

	key := resolveCacheKey(ownerID, packageName, templateName, selector)
	if cached := s.fromCache(ctx, key); cached != nil {
		metrics.ResolutionsTotal.WithLabelValues("cache", "success").Inc()
		return cached, nil
	}

	version, err := s.resolveFromStore(ctx, ownerID, packageName, templateName, versionLabel, env)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("store", "failed").Inc()
		return nil, err
	}

	metrics.ResolutionsTotal.WithLabelValues("store", "success").Inc()
	s.toCache(ctx, key, version)

	return version, nil
}

func (s *ResolveService) resolveFromStore(ctx context.Context, ownerID, packageName, templateName, versionLabel string, env domain.Environment) (*domain.Version, error) {
	pkg, err := s.packageRepo.GetByName(ctx, ownerID, packageName)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByName(ctx, pkg.ID, templateName, ownerID)
	if err != nil {
		return nil, err
	}

	if versionLabel != "" {
		return s.versionRepo.GetByLabel(ctx, template.ID, ownerID, versionLabel)
	}

	var slot *uuid.UUID
	switch env {
	case domain.EnvironmentPreview:
		slot = template.PreviewVersionID
	case domain.EnvironmentRelease:
		slot = template.ReleaseVersionID
	}

	// Пустой или повисший слот означает "не развёрнуто"
	if slot == nil {
		return nil, domain.ErrNotFound
	}

	return s.versionRepo.GetByID(ctx, *slot, ownerID)
}

func (s *ResolveService) fromCache(ctx context.Context, key string) *domain.Version {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsMiss(err) {
			s.logger.Warn("resolve cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var version domain.Version
	if err := json.Unmarshal([]byte(raw), &version); err != nil {
		s.logger.Warn("resolve cache entry is corrupted", zap.String("key", key), zap.Error(err))
		return nil
	}

	return &version
}

func (s *ResolveService) toCache(ctx context.Context, key string, version *domain.Version) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(version)
	if err != nil {
		s.logger.Warn("failed to marshal version for cache", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("resolve cache write failed", zap.String("key", key), zap.Error(err))
	}
}
