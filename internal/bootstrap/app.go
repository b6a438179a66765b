package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"linkedin-backend/internal/auth"
	"linkedin-backend/internal/linkedin"
	"linkedin-backend/internal/llm"
	openai "linkedin-backend/internal/llm/openai"
	"linkedin-backend/internal/posts"
	"linkedin-backend/internal/profiles"
	"linkedin-backend/internal/shared/config"
	"linkedin-backend/internal/shared/server"
	"linkedin-backend/internal/shared/storage/db"
	"linkedin-backend/internal/tokens"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	TokenStore   tokens.Store
	ProfilesRepo profiles.Repo
	PostsRepo    posts.Repo
	LinkedIn     *linkedin.Client

	ProfilesService *profiles.Service
	PostsService    *posts.Service
	LinkedInAuth    *auth.LinkedInService

	ProfilesHandler *profiles.Handler
	PostsHandler    *posts.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		LinkedInAuth:    app.LinkedInAuth,
		ProfilesHandler: app.ProfilesHandler,
		PostsHandler:    app.PostsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	var profilesRepo profiles.Repo
	var postsRepo posts.Repo

	if app.DB != nil {
		profilesRepo = &profiles.PGRepo{DB: app.DB}
		postsRepo = &posts.PGRepo{DB: app.DB}
	} else {
		profilesRepo = profiles.NewMemoryRepo()
		postsRepo = posts.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			if !isDevLike(app.Config.Env) {
				return err
			}
			log.Printf("bootstrap: OpenAI not configured; using placeholder LLM: %v", err)
		} else {
			llmClient = openaiClient
		}
	}

	tokenStore := tokens.NewMemoryStore()
	linkedinClient := linkedin.NewClient(
		app.Config.LinkedInClientID,
		app.Config.LinkedInClientSecret,
		app.Config.LinkedInRedirectURL,
	)

	app.TokenStore = tokenStore
	app.ProfilesRepo = profilesRepo
	app.PostsRepo = postsRepo
	app.LinkedIn = linkedinClient

	app.ProfilesService = profiles.NewService(profilesRepo, llmClient)
	app.PostsService = posts.NewService(postsRepo, tokenStore, llmClient, linkedinClient)
	app.LinkedInAuth = auth.NewLinkedInService(linkedinClient, tokenStore, app.Config.LinkedInClientID)

	app.ProfilesHandler = profiles.NewHandler(app.ProfilesService)
	app.PostsHandler = posts.NewHandler(app.PostsService)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
