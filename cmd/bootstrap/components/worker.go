package components

import (
	"context"

	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/shared"
	"redemption-ledger/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewWorkerPool,
		NewSweeper,
	),
	fx.Invoke(
		startWorkers,
	),
)

func NewWorkerPool(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, metrics *observability.Metrics, redemptions commands.RedemptionCommands) *worker.Pool {
	pool := worker.NewPool(uow, clk, cfg.Worker, metrics)
	pool.Register(commands.JobProcessReceipt, worker.ProcessReceiptHandler(redemptions, cfg.Worker.MaxAttempts))
	pool.Register(commands.JobRedeemClaim, worker.RedeemClaimHandler(redemptions))
	return pool
}

func NewSweeper(uc commands.MaintenanceCommands, cfg config.Config) *worker.Sweeper {
	return worker.NewSweeper(uc, cfg.Worker.SweepInterval)
}

func startWorkers(lc fx.Lifecycle, pool *worker.Pool, sweeper *worker.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pool.Start(ctx)
			sweeper.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := sweeper.Stop(ctx); err != nil {
				return err
			}
			return pool.Stop(ctx)
		},
	})
}
