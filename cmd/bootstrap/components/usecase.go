package components

import (
	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/domain/referral"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"
	"redemption-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewRedemptionConfig,
		usecase.NewTokenValidator,

		// Commands
		NewClaimCommands,
		NewReceiptCommands,
		commands.NewLedgerUseCase,
		commands.NewReferralUseCase,
		commands.NewRedemptionUseCase,
		NewMaintenanceCommands,

		// Queries
		queries.NewOfferQueries,
		queries.NewClaimQueries,
		queries.NewWalletQueries,
		queries.NewReceiptQueries,
	),
)

// NewRedemptionConfig validates the matching and referral settings at
// start-up so a bad value fails the boot instead of the first receipt.
func NewRedemptionConfig(cfg config.Config) (commands.RedemptionConfig, error) {
	rc := cfg.Redemption

	vocab, err := matching.LoadVocabulary(rc.VocabularyFile)
	if err != nil {
		return commands.RedemptionConfig{}, err
	}
	tieBreak, err := matching.ParseTieBreak(rc.TieBreak)
	if err != nil {
		return commands.RedemptionConfig{}, err
	}
	engine, err := matching.NewEngine(matching.NewNormalizer(vocab), matching.Options{
		Threshold:     rc.MatchThreshold,
		CategoryBoost: rc.CategoryBoost,
		TieBreak:      tieBreak,
	})
	if err != nil {
		return commands.RedemptionConfig{}, err
	}

	base, err := referral.ParseBase(rc.ReferralBase)
	if err != nil {
		return commands.RedemptionConfig{}, err
	}
	policy, err := referral.NewPolicy(rc.ReferralRate, base)
	if err != nil {
		return commands.RedemptionConfig{}, err
	}

	return commands.RedemptionConfig{
		Planner: redemption.NewPlanner(engine, rc.ReceiptMaxAge),
		Policy:  policy,
		Retry:   redemption.NewRetryPolicy(rc.RetrySchedule),
	}, nil
}

func NewClaimCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.ClaimCommands {
	return commands.NewClaimUseCase(uow, clk, cfg.Redemption.ClaimTTL)
}

func NewReceiptCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, metrics *observability.Metrics) commands.ReceiptCommands {
	return commands.NewReceiptUseCase(uow, clk, cfg.Redemption.MaxImageBytes, metrics)
}

func NewMaintenanceCommands(uow shared.UnitOfWork, claims commands.ClaimCommands, clk clock.Clock, cfg config.Config) commands.MaintenanceCommands {
	return commands.NewMaintenanceUseCase(uow, claims, clk, cfg.Redemption.ReceiptRetention)
}
