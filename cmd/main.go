package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"promptforge/internal/auth"
	"promptforge/internal/cache"
	"promptforge/internal/config"
	"promptforge/internal/handler"
	"promptforge/internal/logger"
	"promptforge/internal/repository"
	"promptforge/internal/service"
)

func connectWithRetry(log *zap.Logger, dsn string, maxAttempts int, delay time.Duration) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	for i := 0; i < maxAttempts; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}

		log.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err))
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxAttempts, err)
}

func runMigrations(cfg *config.Config) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func main() {
	// Загружаем конфигурации
	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(appConfig.Log.Level, appConfig.Log.Format)
	defer log.Sync()

	// Подключаемся к базе данных
	db, err := connectWithRetry(log, appConfig.Database.GetDSN(), 5, time.Second*5)
	if err != nil {
		log.Fatal("failed to connect to database after retries", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(appConfig); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	// Подключение к сервису аутентификации
	authConfig, err := auth.NewConfig(".auth.env")
	if err != nil {
		log.Fatal("failed to load auth config", zap.Error(err))
	}
	auth.InitClient(auth.NewClient(authConfig.Addr))

	// Кэш резолвинга. Без Redis сервис работает, просто без кэша.
	var cacheClient *cache.Client
	if appConfig.Redis.Address != "" {
		cacheClient = cache.NewClient(appConfig.Redis)
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Warn("redis is not available, resolve cache disabled", zap.Error(err))
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	// Инициализация репозиториев
	packageRepo := repository.NewPackageRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	deployRepo := repository.NewDeploymentRepository(db)

	// Инициализация сервисов
	packageService := service.NewPackageService(packageRepo, log)
	templateService := service.NewTemplateService(templateRepo, packageRepo, versionRepo, log)
	versionService := service.NewVersionService(versionRepo, templateRepo, log)
	deploymentService := service.NewDeploymentService(deployRepo, packageRepo, cacheClient, log)
	resolveService := service.NewResolveService(
		packageRepo,
		templateRepo,
		versionRepo,
		cacheClient,
		time.Duration(appConfig.Redis.TTLSeconds)*time.Second,
		log,
	)

	// Инициализация хендлеров
	packageHandler := handler.NewPackageHandler(packageService, log)
	templateHandler := handler.NewTemplateHandler(templateService, log)
	versionHandler := handler.NewVersionHandler(versionService, log)
	deploymentHandler := handler.NewDeploymentHandler(deploymentService, log)
	resolveHandler := handler.NewResolveHandler(resolveService, log)

	// Настройка HTTP роутера
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// HTTP маршруты
	r.Route("/v1", func(r chi.Router) {
		r.Route("/packages", func(r chi.Router) {
			r.Post("/", packageHandler.CreatePackage)
			r.Get("/", packageHandler.ListPackages)

			r.Route("/{packageID}", func(r chi.Router) {
				r.Get("/", packageHandler.GetPackage)
				r.Delete("/", packageHandler.DeletePackage)

				r.Route("/templates", func(r chi.Router) {
					r.Post("/", templateHandler.CreateTemplate)
					r.Get("/", templateHandler.ListTemplates)

					r.Route("/{templateID}", func(r chi.Router) {
						r.Get("/", templateHandler.GetTemplate)
						r.Put("/", templateHandler.UpdateTemplate)
						r.Delete("/", templateHandler.DeleteTemplate)
						r.Post("/deploy", deploymentHandler.Deploy)

						r.Route("/versions", func(r chi.Router) {
							r.Post("/", versionHandler.CreateVersion)
							r.Get("/", versionHandler.ListVersions)

							r.Route("/{versionID}", func(r chi.Router) {
								r.Get("/", versionHandler.GetVersion)
								r.Put("/", versionHandler.UpdateVersion)
								r.Delete("/", versionHandler.DeleteVersion)
							})
						})
					})
				})
			})
		})

		r.Route("/prompts/{username}/{packageName}/{templateName}", func(r chi.Router) {
			r.Get("/", resolveHandler.ResolvePrompt)
			r.Post("/render", resolveHandler.RenderPrompt)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}

	// Канал для сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("port", appConfig.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
	}

	log.Info("server exited properly")
}
