package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"claims-backend/internal/appeals"
	googleauth "claims-backend/internal/auth"
	"claims-backend/internal/claims"
	"claims-backend/internal/crm/hubspot"
	"claims-backend/internal/leads"
	"claims-backend/internal/llm"
	"claims-backend/internal/llm/gemini"
	"claims-backend/internal/risk"
	"claims-backend/internal/shared/config"
	"claims-backend/internal/shared/server"
	"claims-backend/internal/shared/storage/db"
	"claims-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ClaimsRepo  claims.Repo
	AppealsRepo appeals.Repo
	LeadsRepo   leads.Repo
	UsersRepo   users.Repo

	Scorer         *risk.Scorer
	ClaimsService  *claims.Service
	AppealsService *appeals.Service
	LeadsService   *leads.Service
	UsersService   *users.Service

	ClaimsHandler  *claims.Handler
	RiskHandler    *risk.Handler
	AppealsHandler *appeals.Handler
	LeadsHandler   *leads.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
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
		Config:         app.Config,
		ClaimsHandler:  app.ClaimsHandler,
		RiskHandler:    app.RiskHandler,
		AppealsHandler: app.AppealsHandler,
		LeadsHandler:   app.LeadsHandler,
		UsersHandler:   app.UsersHandler,
		GoogleAuth:     app.GoogleAuth,
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
	return sqlDB, nil
}

func buildServices(app *App) error {
	cfg := app.Config

	if app.DB != nil {
		app.ClaimsRepo = &claims.PGRepo{DB: app.DB}
		app.AppealsRepo = &appeals.PGRepo{DB: app.DB}
		app.LeadsRepo = &leads.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ClaimsRepo = claims.NewMemoryRepo()
		app.AppealsRepo = appeals.NewMemoryRepo()
		app.LeadsRepo = leads.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	// Missing AI credentials select the rule-only / template mode.
	llmClient := llm.Completer(llm.Disabled{})
	model := cfg.LLMModel
	if cfg.AIEnabled() {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return err
		}
		llmClient = geminiClient
		model = geminiClient.Model()
	}

	app.Scorer = &risk.Scorer{}
	if llm.IsConfigured(llmClient) {
		app.Scorer.Insights = &risk.InsightsClient{LLM: llmClient, Model: model}
	}

	app.ClaimsService = &claims.Service{
		Repo:   app.ClaimsRepo,
		Scorer: app.Scorer,
	}

	app.AppealsService = &appeals.Service{
		Claims: app.ClaimsRepo,
		Repo:   app.AppealsRepo,
		Generator: &appeals.Generator{
			LLM:   llmClient,
			Model: model,
		},
	}

	var crmClient leads.ContactSyncer
	if strings.TrimSpace(cfg.HubSpotToken) != "" {
		client, err := hubspot.NewClient(cfg.HubSpotToken)
		if err != nil {
			return err
		}
		crmClient = client
	}
	app.LeadsService = &leads.Service{
		Repo: app.LeadsRepo,
		CRM:  crmClient,
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	app.ClaimsHandler = claims.NewHandler(app.ClaimsService)
	app.RiskHandler = risk.NewHandler()
	app.AppealsHandler = appeals.NewHandler(app.AppealsService)
	app.LeadsHandler = leads.NewHandler(app.LeadsService)
	app.UsersHandler = users.NewHandler(app.UsersService)

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
