package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/handler"
	"github.com/spendflow/spend-console/internal/api/middleware"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
	"github.com/spendflow/spend-console/internal/infrastructure/identity"
)

// Deps carries everything the router wires together.
type Deps struct {
	Store       *session.Store
	Redis       *redis.Client
	Provider    *identity.Provider
	Backends    handler.BackendFactory
	Uploader    ports.ReceiptUploader
	Cookie      handler.AuthCookie
	CallbackURL string
	Poll        handler.PollIntervals
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("spendflow_console"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Provider, deps.Backends, deps.Store, deps.Cookie, deps.CallbackURL, deps.Log)
	console := handler.NewConsole(deps.Backends, deps.Uploader, deps.Provider, deps.Store, deps.Poll, deps.Log)
	healthHandler := handler.NewHealthHandler(deps.Redis)

	// --- Public routes ---
	e.GET("/", authHandler.Home)
	e.GET("/login", authHandler.LoginPage)
	e.GET("/login/start", authHandler.Start)
	e.GET("/callback", authHandler.Callback)
	e.GET("/logout", authHandler.Logout)

	e.StaticFS("/static", echo.MustSubFS(handler.StaticFS, "static"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – is the session store up?

	// --- Authenticated routes ---
	authed := e.Group("", middleware.SessionLoader(deps.Store, deps.Cookie.Name))

	authed.GET("/dashboard", console.Dashboard)
	authed.POST("/dashboard/:decision/:id", console.DashboardDecide, middleware.RoleGate(domain.ApproverRoles...))

	authed.GET("/spends", console.Spends)
	authed.GET("/spends/new", console.SpendNew)
	authed.POST("/spends/new", console.SpendCreate)
	authed.GET("/spends/:id", console.SpendDetail)

	approvals := authed.Group("/approvals", middleware.RoleGate(domain.ApproverRoles...))
	approvals.GET("", console.Approvals)
	approvals.POST("/:decision/:id", console.ApprovalDecide)

	authed.GET("/notifications", console.Notifications)
	authed.POST("/notifications/read/:id", console.NotificationRead)
	authed.POST("/notifications/read-all", console.NotificationReadAll)

	policies := authed.Group("/policies", middleware.RoleGate(domain.RoleAdmin, domain.RoleFinance))
	policies.GET("", console.Policies)
	policies.POST("", console.PolicyCreate)
	policies.POST("/toggle/:id", console.PolicyToggle)
	policies.POST("/delete/:id", console.PolicyDelete)

	authed.GET("/audit", console.Audit, middleware.RoleGate(domain.RoleAdmin))
	authed.GET("/settings", console.Settings, middleware.RoleGate(domain.RoleManager, domain.RoleFinance, domain.RoleAdmin))

	api := authed.Group("/api")
	api.GET("/notifications/unread-count", console.UnreadCount)
	api.GET("/notifications/stream", console.UnreadStream)
	api.GET("/notifications/feed", console.NotificationsStream)

	// Unknown routes get the styled not-found view instead of a bare 404.
	e.RouteNotFound("/*", console.NotFound)

	return e, nil
}
