package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/analyses"
	"lexibridge-backend/internal/documents"
	"lexibridge-backend/internal/extract"
	"lexibridge-backend/internal/health"
	"lexibridge-backend/internal/llm"
	"lexibridge-backend/internal/llm/groq"
	"lexibridge-backend/internal/shared/auth"
	"lexibridge-backend/internal/shared/config"
	"lexibridge-backend/internal/shared/server"
	"lexibridge-backend/internal/shared/storage/db"
	"lexibridge-backend/internal/shared/storage/object"
	localstore "lexibridge-backend/internal/shared/storage/object/local"
	s3store "lexibridge-backend/internal/shared/storage/object/s3"
	"lexibridge-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Issuer *auth.Issuer
	Engine *llm.Engine

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	AnalysesRepo  analyses.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service

	HealthHandler    *health.Handler
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Issuer: issuer,
		Engine: engine,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Issuer:          app.Issuer,
		Identity:        app.UsersService,
		HealthHandler:   app.HealthHandler,
		UserHandler:     app.UsersHandler,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysesHandler,
	})

	if cfg.SeedTestUser && cfg.IsDevLike() {
		seedTestUser(ctx, app.UsersService)
	}

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case "none":
		return nil, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildEngine(cfg config.Config) (*llm.Engine, error) {
	timeout := time.Duration(cfg.LLMTimeoutSecs) * time.Second

	if strings.TrimSpace(cfg.GroqAPIKey) == "" {
		log.Printf("bootstrap: GROQ_API_KEY empty; AI responses will be mocked")
		return llm.NewEngine(nil, timeout), nil
	}

	client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	if err != nil {
		return nil, err
	}
	return llm.NewEngine(client, timeout), nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Issuer)
	app.DocumentsService = documents.NewService(app.DocumentsRepo, extract.NewPDFExtractor(), app.Store)
	app.AnalysesService = analyses.NewService(app.AnalysesRepo, app.DocumentsRepo, app.UsersService, app.Engine)

	app.HealthHandler = health.NewHandler(app.DB != nil, app.Engine.Available())
	app.UsersHandler = users.NewHandler(app.UsersService, app.DocumentsService, app.AnalysesService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.AnalysesHandler = analyses.NewHandler(app.AnalysesService)
}
