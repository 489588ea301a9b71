package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	posapp "github.com/shopdesk/backend/internal/application/pos"
	schedulingapp "github.com/shopdesk/backend/internal/application/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/cache"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/event"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopdesk/backend/internal/interfaces/http/handler"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopdesk/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler -o ../../docs --v3.1

//	@title			ShopDesk API
//	@version		1.0
//	@description	Invoicing, payments and appointments for the front desk

//	@contact.name	ShopDesk Support
//	@contact.email	support@shopdesk.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Each signal stays a no-op unless enabled in config.
	otelSDK, err := telemetry.Setup(ctx, telemetry.PipelinesFromSettings(cfg.Telemetry), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := telemetry.NewBridgedLogger(baseLog, otelSDK.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShopDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowQueryThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver() == persistence.DriverSQLite {
		// Local runs skip cmd/migrate.
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfigFromSettings(cfg.Telemetry, db.Driver()), log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, otelSDK, telemetry.DBMetricsConfig{
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Caches: Redis when configured and reachable, in-memory otherwise
	cacheFactory := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	if err := cacheFactory.Connect(ctx); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	var reportCache cache.ReportCache = cache.NopReportCache{}
	if cfg.Report.CacheEnabled {
		reportCache = cacheFactory.ReportCache()
	}
	idempotencyStore := cacheFactory.IdempotencyStore()
	defer idempotencyStore.Close()

	posMetrics, err := telemetry.NewPOSMetrics(telemetry.POSMetricsConfig{
		Meter:    otelSDK.Meter("shopdesk.pos"),
		Logger:   log,
		Provider: telemetry.NewGormLedgerMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize POS metrics", zap.Error(err))
	}
	if otelSDK.MetricsEnabled() {
		posMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
	}
	defer posMetrics.Stop()

	// Events fan out after commit: report cache invalidation and counters
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewReportCacheInvalidator(reportCache, log))
	eventBus.Subscribe(event.NewMetricsHandler(posMetrics))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// Application services
	loc := cfg.Report.Location()
	invoiceService := posapp.NewInvoiceService(uow, invoiceRepo, paymentRepo, appointmentRepo, log)
	invoiceService.SetEventPublisher(eventBus)
	invoiceService.SetStockMetrics(posMetrics)
	invoiceService.SetIdempotencyStore(idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Idempotency.Enabled,
		TTL:     cfg.Idempotency.TTL,
	})
	productService := posapp.NewProductService(productRepo, log)
	paymentService := posapp.NewPaymentService(paymentRepo)
	reportService := posapp.NewReportService(reportRepo, reportCache, posapp.ReportServiceConfig{
		Location:    loc,
		DefaultDays: cfg.Report.DefaultDays,
		CacheTTL:    cfg.Report.CacheTTL,
	}, log)
	staffService := schedulingapp.NewStaffService(staffRepo, log)
	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, staffRepo, loc, log)
	dashboardService := schedulingapp.NewDashboardService(appointmentRepo, staffRepo, loc)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - generate/propagate request ID
	// 2. Recovery - catch panics
	// 3. Logger - log requests
	// 4. Tracing - server span per request, failed on 5xx
	// 5. Security headers, CORS, body limit
	// 6. HTTP metrics
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     otelSDK.TracesEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Enabled: otelSDK.MetricsEnabled(),
		Meter:   otelSDK.Meter("http.server"),
	}))

	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if cacheFactory.UsingRedis() {
		checks["redis"] = cacheFactory.Ping
	}
	systemHandler := handler.NewSystemHandler(version, checks)
	engine.GET("/health", systemHandler.Health)

	authMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		CookieName: cfg.Cookie.AccessTokenName,
		Logger:     log,
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, authMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(authMiddleware, middleware.TracingAttributeInjector())
	router.RegisterAPI(r, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg.Cookie),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Product:     handler.NewProductHandler(productService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Report:      handler.NewReportHandler(reportService),
		Staff:       handler.NewStaffHandler(staffService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}, log)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// last, so the shutdown itself is still exported
	if err := otelSDK.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
