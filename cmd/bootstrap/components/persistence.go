package components

import (
	"redemption-ledger/internal/infra/readstore"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/infra/uow"
	"redemption-ledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Offer
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.OfferViewQueries)),
		),
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(queries.OfferReadStore)),
		),
		// Claim
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ClaimViewQueries)),
		),
		fx.Annotate(
			readstore.NewClaimReadStore,
			fx.As(new(queries.ClaimReadStore)),
		),
		// Wallet
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.WalletViewQueries)),
		),
		fx.Annotate(
			readstore.NewWalletReadStore,
			fx.As(new(queries.WalletReadStore)),
		),
		// Receipt
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReceiptViewQueries)),
		),
		fx.Annotate(
			readstore.NewReceiptReadStore,
			fx.As(new(queries.ReceiptReadStore)),
		),
	),
)

// Write-side repositories are built per transaction inside the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
