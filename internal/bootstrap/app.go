package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/agentcontrol"
	"invoice-assistant/internal/agentlogs"
	"invoice-assistant/internal/agents"
	"invoice-assistant/internal/categorization"
	"invoice-assistant/internal/feedback"
	"invoice-assistant/internal/incidents"
	"invoice-assistant/internal/invoices"
	"invoice-assistant/internal/llm"
	"invoice-assistant/internal/payments"
	openai "invoice-assistant/internal/llm/openai"
	"invoice-assistant/internal/prompts"
	"invoice-assistant/internal/regions"
	"invoice-assistant/internal/sessions"
	"invoice-assistant/internal/shared/config"
	"invoice-assistant/internal/shared/server"
	"invoice-assistant/internal/shared/storage/db"
	"invoice-assistant/internal/shared/storage/object"
	localstore "invoice-assistant/internal/shared/storage/object/local"
	s3store "invoice-assistant/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired by Build.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Hub    *categorization.Hub

	SessionsService       *sessions.Service
	RegionsService        *regions.Service
	InvoicesService       *invoices.Service
	IncidentsService      *incidents.Service
	CategorizationService *categorization.Service
	AgentsService         *agents.Service
	PromptsService        *prompts.Service
	AgentControlService   *agentcontrol.Service
	FeedbackService       *feedback.Service
	PaymentsService       *payments.Service
	AgentLogsService      *agentlogs.Service

	SessionsHandler       *sessions.Handler
	RegionsHandler        *regions.Handler
	InvoicesHandler       *invoices.Handler
	IncidentsHandler      *incidents.Handler
	CategorizationHandler *categorization.Handler
	AgentsHandler         *agents.Handler
	PromptsHandler        *prompts.Handler
	AgentControlHandler   *agentcontrol.Handler
	FeedbackHandler       *feedback.Handler
	PaymentsHandler       *payments.Handler
	AgentLogsHandler      *agentlogs.Handler
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Hub:    categorization.NewHub(),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Resolver:       app.SessionsService,
		Sessions:       app.SessionsHandler,
		Regions:        app.RegionsHandler,
		Invoices:       app.InvoicesHandler,
		Incidents:      app.IncidentsHandler,
		Categorization: app.CategorizationHandler,
		Agents:         app.AgentsHandler,
		Prompts:        app.PromptsHandler,
		AgentControl:   app.AgentControlHandler,
		Feedback:       app.FeedbackHandler,
		Payments:       app.PaymentsHandler,
		AgentLogs:      app.AgentLogsHandler,
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

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		sessionRepo  sessions.Repo
		regionRepo   regions.Repo
		invoiceRepo  invoices.Repo
		incidentRepo incidents.Repo
		jobRepo      categorization.Repo
		promptRepo   prompts.Repo
		controlRepo  agentcontrol.Repo
		feedbackRepo feedback.Repo
		paymentRepo  payments.Repo
		agentLogRepo agentlogs.Repo
	)

	if app.DB != nil {
		sessionRepo = &sessions.PGRepo{DB: app.DB}
		regionRepo = &regions.PGRepo{DB: app.DB}
		invoiceRepo = &invoices.PGRepo{DB: app.DB}
		incidentRepo = &incidents.PGRepo{DB: app.DB}
		jobRepo = &categorization.PGRepo{DB: app.DB}
		promptRepo = &prompts.PGRepo{DB: app.DB}
		controlRepo = &agentcontrol.PGRepo{DB: app.DB}
		feedbackRepo = &feedback.PGRepo{DB: app.DB}
		paymentRepo = &payments.PGRepo{DB: app.DB}
		agentLogRepo = &agentlogs.PGRepo{DB: app.DB}
	} else {
		sessionMem := sessions.NewMemoryRepo()
		seedDevUser(sessionMem)
		sessionRepo = sessionMem
		regionRepo = regions.NewMemoryRepo()
		invoiceMem := invoices.NewMemoryRepo()
		invoiceMem.Seed(sampleInvoices())
		invoiceRepo = invoiceMem
		incidentMem := incidents.NewMemoryRepo()
		incidentMem.Seed(sampleIncidents())
		incidentRepo = incidentMem
		jobRepo = categorization.NewMemoryRepo()
		promptRepo = prompts.NewMemoryRepo()
		controlRepo = agentcontrol.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
		paymentRepo = payments.NewMemoryRepo(invoiceMem)
		agentLogRepo = agentlogs.NewMemoryRepo()
	}

	app.SessionsService = sessions.NewService(sessionRepo)
	app.RegionsService = regions.NewService(regionRepo)
	app.InvoicesService = invoices.NewService(invoiceRepo)
	app.IncidentsService = incidents.NewService(incidentRepo)
	app.CategorizationService = categorization.NewService(jobRepo, app.Hub, app.Store, categorization.NewKeywordCategorizer())
	app.PromptsService = prompts.NewService(promptRepo, app.RegionsService)
	app.AgentControlService = agentcontrol.NewService(controlRepo)
	app.FeedbackService = feedback.NewService(feedbackRepo)
	app.PaymentsService = payments.NewService(paymentRepo)
	app.AgentLogsService = agentlogs.NewService(agentLogRepo)

	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}
	app.AgentsService = agents.NewService(llmClient, app.AgentLogsService)

	app.SessionsHandler = sessions.NewHandler(app.SessionsService)
	app.RegionsHandler = regions.NewHandler(app.RegionsService)
	app.InvoicesHandler = invoices.NewHandler(app.InvoicesService)
	app.IncidentsHandler = incidents.NewHandler(app.IncidentsService)
	app.CategorizationHandler = categorization.NewHandler(app.CategorizationService)
	app.AgentsHandler = agents.NewHandler(app.AgentsService)
	app.PromptsHandler = prompts.NewHandler(app.PromptsService)
	app.AgentControlHandler = agentcontrol.NewHandler(app.AgentControlService)

	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if cfg.LLMProvider != "openai" || cfg.LLMModel == "" || apiKey == "" {
		log.Printf("bootstrap: LLM not configured; agent endpoints will return 503")
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(apiKey, cfg.LLMModel)
}

func seedDevUser(repo *sessions.MemoryRepo) {
	username := envOr("DEV_USERNAME", "admin")
	password := envOr("DEV_PASSWORD", "admin123")
	if err := repo.SeedUser(username, password, "admin"); err != nil {
		log.Printf("bootstrap: seed dev user: %v", err)
		return
	}
	log.Printf("bootstrap: seeded dev user %q", username)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func sampleInvoices() []invoices.InvoiceHeader {
	now := time.Now().UTC()
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset) }
	ptr := func(t time.Time) *time.Time { return &t }
	return []invoices.InvoiceHeader{
		{ID: "inv-0001", InvoiceNumber: "INV-1001", PONumber: "PO-551", SupplierName: "Acme Corp", BrandName: "Contoso", Region: "NA", CountryCode: "US", InvoiceType: "standard", Status: "processed", TotalAmount: 1240.50, Currency: "USD", ReceivedAt: ptr(day(9)), CreatedAt: day(9)},
		{ID: "inv-0002", InvoiceNumber: "INV-1002", SupplierName: "Acme Corp", BrandName: "Contoso", Region: "NA", CountryCode: "CA", InvoiceType: "credit", Status: "completed", TotalAmount: 310.00, Currency: "CAD", ReceivedAt: ptr(day(7)), CreatedAt: day(7)},
		{ID: "inv-0003", InvoiceNumber: "INV-1003", PONumber: "PO-552", SupplierName: "Globex GmbH", BrandName: "Fabrikam", Region: "EMEA", CountryCode: "DE", InvoiceType: "standard", Status: "failed", TotalAmount: 980.75, Currency: "EUR", ReceivedAt: ptr(day(5)), CreatedAt: day(5)},
		{ID: "inv-0004", InvoiceNumber: "INV-1004", SupplierName: "Initech Ltd", BrandName: "Fabrikam", Region: "APAC", CountryCode: "JP", InvoiceType: "standard", Status: "error", TotalAmount: 2210.00, Currency: "JPY", ReceivedAt: ptr(day(3)), CreatedAt: day(3)},
		{ID: "inv-0005", InvoiceNumber: "INV-1005", PONumber: "PO-553", SupplierName: "Globex GmbH", BrandName: "Contoso", Region: "EMEA", CountryCode: "FR", InvoiceType: "standard", Status: "success", TotalAmount: 640.20, Currency: "EUR", ReceivedAt: ptr(day(1)), CreatedAt: day(1)},
	}
}

func sampleIncidents() []incidents.Incident {
	now := time.Now().UTC()
	opened := func(offset int) time.Time { return now.AddDate(0, 0, -offset) }
	resolvedAfter := func(t time.Time, hours int) *time.Time {
		r := t.Add(time.Duration(hours) * time.Hour)
		return &r
	}
	i1 := opened(12)
	i2 := opened(9)
	i3 := opened(6)
	i4 := opened(2)
	return []incidents.Incident{
		{ID: "inc-0001", IncidentNumber: "INC-9001", BusinessLine: "Payments", ApplicationName: "invoice-gateway", MajorIncident: true, RootCauseCategory: "Infrastructure", ResolutionCategory: "Failover", Description: "Primary database failover during peak load", OpenedAt: i1, ResolvedAt: resolvedAfter(i1, 6)},
		{ID: "inc-0002", IncidentNumber: "INC-9002", BusinessLine: "Payments", ApplicationName: "invoice-gateway", MajorIncident: false, RootCauseCategory: "Application", ResolutionCategory: "Code Fix", Description: "Duplicate postings on retry", OpenedAt: i2, ResolvedAt: resolvedAfter(i2, 3)},
		{ID: "inc-0003", IncidentNumber: "INC-9003", BusinessLine: "Procurement", ApplicationName: "vendor-portal", MajorIncident: false, RootCauseCategory: "Access Management", ResolutionCategory: "Config Change", Description: "SSO group mapping out of date", OpenedAt: i3, ResolvedAt: resolvedAfter(i3, 2)},
		{ID: "inc-0004", IncidentNumber: "INC-9004", BusinessLine: "Procurement", ApplicationName: "vendor-portal", MajorIncident: false, RootCauseCategory: "Integration", ResolutionCategory: "", Description: "EDI feed lagging behind schedule", OpenedAt: i4},
	}
}
