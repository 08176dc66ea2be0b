package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"redemption-ledger/internal/domain/auth"
	"redemption-ledger/internal/handler/api"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Offer    *api.OfferHandler
	Claim    *api.ClaimHandler
	Receipt  *api.ReceiptHandler
	Wallet   *api.WalletHandler
	Referral *api.ReferralHandler
	Admin    *api.AdminHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimiter
	Logger    *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(mw.Auth.RequireAuth())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/offers", Handler: h.Offer.List},

			{Method: http.MethodPost, Path: "/claims", Handler: h.Claim.Create},
			{Method: http.MethodGet, Path: "/claims", Handler: h.Claim.ListMine},
			{Method: http.MethodPost, Path: "/claims/:id/cancel", Handler: h.Claim.Cancel},

			{
				Method: http.MethodPost, Path: "/receipts", Handler: h.Receipt.Submit,
				Mw: []gin.HandlerFunc{mw.RateLimit.Limit("receipts")},
			},
			{Method: http.MethodGet, Path: "/receipts/:id", Handler: h.Receipt.Get},

			{Method: http.MethodGet, Path: "/wallet", Handler: h.Wallet.Summary},
			{Method: http.MethodGet, Path: "/wallet/transactions", Handler: h.Wallet.Transactions},
			{Method: http.MethodPost, Path: "/wallet/payouts", Handler: h.Wallet.Payout},

			{Method: http.MethodGet, Path: "/referrals/code", Handler: h.Referral.Code},
			{Method: http.MethodPost, Path: "/referrals/attribute", Handler: h.Referral.Attribute},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(mw.Auth.RequireRoleAtLeast(auth.RoleOperator))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/adjustments", Handler: h.Admin.Adjust},
			{Method: http.MethodGet, Path: "/claims/review", Handler: h.Admin.FlaggedClaims},
		})
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
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

// chainHandlers runs per-route middleware inline and stops at the first abort.
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
