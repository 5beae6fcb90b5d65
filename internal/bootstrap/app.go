package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/render"
	"resume-tailor/internal/resumes"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/server"
	"resume-tailor/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Repo    resumes.Repo
	Service *resumes.Service
	Handler *resumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StoreBackend) == "" {
		cfg.StoreBackend = "file"
	}
	ctx := context.Background()

	repo, sqlDB, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &resumes.Service{
		Repo:      repo,
		Extractor: extract.Extractor{},
		Renderer:  &render.PDFRenderer{Dir: cfg.FilesDir, ChromePath: cfg.ChromePath},
	}
	handler := resumes.NewHandler(svc)

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Repo:    repo,
		Service: svc,
		Handler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ResumeHandler: handler,
	})

	return app, nil
}

func buildRepo(ctx context.Context, cfg config.Config) (resumes.Repo, *sql.DB, error) {
	switch cfg.StoreBackend {
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if sqlDB == nil {
			return resumes.NewMemoryRepo(), nil, nil
		}
		return &resumes.PGRepo{DB: sqlDB}, sqlDB, nil
	case "sqlite":
		repo, err := resumes.NewSQLiteRepo(cfg.SQLiteDir)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	case "memory":
		return resumes.NewMemoryRepo(), nil, nil
	default:
		repo, err := resumes.NewFileRepo(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
