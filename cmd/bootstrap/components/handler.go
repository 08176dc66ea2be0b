package components

import (
	"redemption-ledger/internal/handler"
	"redemption-ledger/internal/handler/api"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
		api.NewClaimHandler,
		api.NewReceiptHandler,
		api.NewWalletHandler,
		api.NewReferralHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(registerRoutes),
)

func NewRateLimiter(cfg config.Config, metrics *observability.Metrics) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit, metrics)
}

type routeParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Logger    *middleware.Logger
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimiter
	Offer     *api.OfferHandler
	Claim     *api.ClaimHandler
	Receipt   *api.ReceiptHandler
	Wallet    *api.WalletHandler
	Referral  *api.ReferralHandler
	Admin     *api.AdminHandler
}

func registerRoutes(p routeParams) {
	handler.NewRouter(p.Engine, p.Config,
		handler.Handlers{
			Offer:    p.Offer,
			Claim:    p.Claim,
			Receipt:  p.Receipt,
			Wallet:   p.Wallet,
			Referral: p.Referral,
			Admin:    p.Admin,
		},
		handler.Middlewares{
			Auth:      p.Auth,
			RateLimit: p.RateLimit,
			Logger:    p.Logger,
		},
	)
}
