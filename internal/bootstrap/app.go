package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locvowork/erp_office_note/internal/checklist"
	"github.com/locvowork/erp_office_note/internal/config"
	"github.com/locvowork/erp_office_note/internal/handler"
	"github.com/locvowork/erp_office_note/internal/logger"
	"github.com/locvowork/erp_office_note/internal/metrics"
	"github.com/locvowork/erp_office_note/internal/service"
)

type App struct {
	Echo     *echo.Echo
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	layout, err := checklist.LoadLayout(config.DefaultEnvConfig.LAYOUT_PATH)
	if err != nil {
		return fmt.Errorf("failed to load workbook layout: %w", err)
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("failed to parse page templates: %w", err)
	}
	a.Echo.Renderer = renderer

	// Initialize dependencies
	svc := service.NewOfficeNoteService(service.Options{
		TemplatePath: config.DefaultEnvConfig.TEMPLATE_PATH,
		Filename:     config.DefaultEnvConfig.OUTPUT_FILENAME,
		Layout:       layout,
		Metrics:      a.Metrics,
	})
	gate := handler.NewGateHandler(config.DefaultEnvConfig.APP_PASSWORD)
	noteHandler := handler.NewOfficeNoteHandler(svc, gate)
	if config.DefaultEnvConfig.APP_PASSWORD == "" {
		logger.WarnLog(ctx, "APP_PASSWORD is empty: the password gate accepts empty input")
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(gate, noteHandler)
	return nil
}

func sessionKey() []byte {
	if secret := config.DefaultEnvConfig.SESSION_SECRET; secret != "" {
		return []byte(secret)
	}
	return securecookie.GenerateRandomKey(32)
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		},
	}))
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.BodyLimit(fmt.Sprintf("%dM", config.DefaultEnvConfig.MAX_UPLOAD_MB)))
	a.Echo.Use(session.Middleware(sessions.NewCookieStore(sessionKey())))
}

func (a *App) RegisterRoutes(gate *handler.GateHandler, noteHandler *handler.OfficeNoteHandler) {
	a.Echo.GET("/healthz", handler.HealthHandler)
	a.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	a.Echo.GET("/", noteHandler.PageHandler)
	a.Echo.POST("/login", gate.LoginHandler)
	a.Echo.POST("/check", noteHandler.CheckHandler, gate.RequireSession)

	apiGroup := a.Echo.Group("/api/v1", gate.RequireSession)
	apiGroup.POST("/deficiencies", noteHandler.DeficienciesHandler)
	apiGroup.POST("/office-note", noteHandler.GenerateHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
