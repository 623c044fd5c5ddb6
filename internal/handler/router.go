package handler

import (
	"net/http"

	"loyalty-ledger/internal/handler/api"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Points     *api.PointsHandler
	Membership *api.MembershipHandler
	Tenant     *api.TenantHandler
}

// Observability bundles the cross-cutting pieces the router needs. Metrics may be nil.
type Observability struct {
	Logger  *middleware.Logger
	Metrics MetricsEndpoint
}

type MetricsEndpoint interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, obs, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(obs.Logger.LoggingMiddleware())
	if obs.Metrics != nil {
		engine.Use(middleware.MetricsMiddleware(obs.Metrics))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	if obs.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(obs.Metrics.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	manager := authMiddleware.RequireRoleAtLeast(middleware.RoleManager)
	admin := authMiddleware.RequireRoleAtLeast(middleware.RoleAdmin)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		memberships := apiGroup.Group("/memberships")
		{
			addRoutes(memberships, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Membership.Register},
				{Method: http.MethodPost, Path: "/recalculate", Handler: h.Points.RecalculateBatch, Mw: []gin.HandlerFunc{manager}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Membership.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Membership.Unregister},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Membership.SetStatus, Mw: []gin.HandlerFunc{manager}},
				{Method: http.MethodGet, Path: "/:id/transactions", Handler: h.Membership.ListTransactions},
				{Method: http.MethodPost, Path: "/:id/earn", Handler: h.Points.Earn},
				{Method: http.MethodPost, Path: "/:id/redeem", Handler: h.Points.Redeem},
				{Method: http.MethodPost, Path: "/:id/adjust", Handler: h.Points.Adjust, Mw: []gin.HandlerFunc{manager}},
				{Method: http.MethodPost, Path: "/:id/expire", Handler: h.Points.Expire, Mw: []gin.HandlerFunc{manager}},
				{Method: http.MethodPost, Path: "/:id/recalculate", Handler: h.Points.Recalculate, Mw: []gin.HandlerFunc{manager}},
				{Method: http.MethodGet, Path: "/:id/integrity", Handler: h.Points.Integrity, Mw: []gin.HandlerFunc{manager}},
			})
		}

		transactions := apiGroup.Group("/transactions")
		{
			addRoutes(transactions, []route{
				{Method: http.MethodPost, Path: "/:id/reverse", Handler: h.Points.Reverse},
			})
		}

		branches := apiGroup.Group("/branches")
		branches.Use(manager)
		{
			addRoutes(branches, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Tenant.CreateBranch},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Tenant.DeleteBranch},
			})
		}

		tenants := apiGroup.Group("/tenants")
		tenants.Use(admin)
		{
			addRoutes(tenants, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Tenant.CreateTenant},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Tenant.DeleteTenant},
			})
		}

		subscriptions := apiGroup.Group("/subscriptions")
		{
			addRoutes(subscriptions, []route{
				{Method: http.MethodGet, Path: "/:id/usage", Handler: h.Tenant.GetUsage},
				{Method: http.MethodPost, Path: "/:id/usage/recount", Handler: h.Tenant.RecountUsage, Mw: []gin.HandlerFunc{admin}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
