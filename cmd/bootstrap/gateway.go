package bootstrap

import (
	"redemption-ledger/internal/infra/authority"
	"redemption-ledger/internal/infra/ocr"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/commands"

	"go.uber.org/fx"
)

// GatewayModule wires the outbound collaborators: the redemption authority
// behind its circuit breaker and the OCR service.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		observability.Default,
		clock.NewRealClock,
		fx.Annotate(
			NewAuthorityClient,
			fx.As(new(commands.RedemptionGateway)),
		),
		fx.Annotate(
			NewOCRClient,
			fx.As(new(commands.ReceiptReader)),
		),
	),
)

func NewAuthorityClient(cfg config.Config, clk clock.Clock, metrics *observability.Metrics) *authority.Client {
	br := authority.NewBreaker(cfg.Authority, clk, metrics)
	return authority.NewClient(cfg.Authority, br, metrics)
}

func NewOCRClient(cfg config.Config, clk clock.Clock, metrics *observability.Metrics) *ocr.Client {
	return ocr.NewClient(cfg.OCR, clk, metrics)
}
