package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/admin"
	adminPostgres "github.com/frahmantamala/asset-management/internal/admin/postgres"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/department"
	departmentPostgres "github.com/frahmantamala/asset-management/internal/department/postgres"
	"github.com/frahmantamala/asset-management/internal/otp"
	otpStore "github.com/frahmantamala/asset-management/internal/otp/gormstore"
	"github.com/frahmantamala/asset-management/internal/registry"
	registryPostgres "github.com/frahmantamala/asset-management/internal/registry/postgres"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/internal/transport/rest"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/internal/upload"
	uploadLocal "github.com/frahmantamala/asset-management/internal/upload/local"
	"github.com/frahmantamala/asset-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format)
	lg := logger.L()

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM shares the pgx pool. TranslateError maps unique violations onto
	// gorm.ErrDuplicatedKey so repositories stay driver-agnostic.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	router := chi.NewRouter()

	base := transport.NewBaseHandler(lg)
	tokens := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	registryService := registry.NewService(registryPostgres.NewRepository(gormDB), lg)

	otpService := otp.NewService(
		otpStore.NewStore(gormDB),
		newSender(config.Otp, lg),
		config.Otp.TTL,
		lg,
	)

	departmentService := department.NewService(
		departmentPostgres.NewRepository(gormDB),
		registryService,
		otpService,
		config.Otp.RequireVerification,
		config.Security.BCryptCost,
		lg,
	)
	adminService := admin.NewService(
		adminPostgres.NewRepository(gormDB),
		registryService,
		config.Security.BCryptCost,
		lg,
	)

	storage, err := uploadLocal.NewStorage(config.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	uploadService := upload.NewService(storage, config.Upload.BaseURL, config.Upload.MaxSizeBytes, lg)

	bus := events.NewEventBus(lg)
	subscribeAuditLog(bus, lg)

	workflow := asset.NewWorkflow(asset.WorkflowKind(config.Assets.Workflow), config.Assets.RetiredIsTerminal)
	validator := asset.NewValidator(departmentService, registryService, uploadService, config.Assets.LocationRequired, lg)
	assetService := asset.NewService(
		assetPostgres.NewAssetRepository(gormDB),
		validator,
		workflow,
		registryService,
		bus,
		lg,
	)

	handlers := rest.Handlers{
		Asset:      asset.NewHandler(assetService),
		Department: department.NewHandler(base, departmentService, tokens),
		Admin:      admin.NewHandler(base, adminService, tokens),
		Auth:       auth.NewHandler(base, tokens),
		Otp:        otp.NewHandler(base, otpService),
		Upload:     upload.NewHandler(base, uploadService, config.Upload.MaxSizeBytes),
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, tokens, config.Upload.Dir, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// newSender picks SMTP when configured, otherwise logs codes for local use.
func newSender(cfg internal.OtpConfig, lg *slog.Logger) otp.Sender {
	if cfg.SMTPAddr == "" {
		lg.Warn("no smtp_addr configured, verification codes will be logged")
		return &otp.LogSender{Logger: lg}
	}
	return otp.NewSMTPSender(cfg.SMTPAddr, cfg.FromAddress, cfg.SMTPUser, cfg.SMTPPassword, cfg.TTL)
}

// subscribeAuditLog records every asset lifecycle event in the structured log.
func subscribeAuditLog(bus *events.EventBus, lg *slog.Logger) {
	handler := func(_ context.Context, event events.Event) error {
		lg.Info("audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload(),
		)
		return nil
	}

	for _, eventType := range []string{
		events.AssetSubmitted,
		events.AssetApproved,
		events.AssetRejected,
		events.AssetStatusChanged,
		events.AssetDeleted,
	} {
		bus.Subscribe(eventType, handler)
	}
}

// initDB initializes the pgx-backed database connection.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
