package repository

import (
	"context"
	"time"

	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReferralWriteQueries interface {
	GetReferralCodeByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.ReferralCodes, error)
	GetReferralCodeByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.ReferralCodes, error)
	CreateReferralCode(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReferralCodeParams) (int64, error)
	GetReferralEdge(ctx context.Context, db sqlc.DBTX, referredID uuid.UUID) (sqlc.ReferralEdges, error)
	CreateReferralEdge(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReferralEdgeParams) (int64, error)
}

type ReferralRepository struct {
	queries ReferralWriteQueries
	db      sqlc.DBTX
}

func NewReferralRepository(queries ReferralWriteQueries, db sqlc.DBTX) *ReferralRepository {
	return &ReferralRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReferralRepository) FindCodeByUser(ctx context.Context, userID uuid.UUID) (string, error) {
	row, err := r.queries.GetReferralCodeByUser(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("referral code not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to get referral code", err)
	}
	return row.Code, nil
}

func (r *ReferralRepository) FindUserByCode(ctx context.Context, code string) (uuid.UUID, error) {
	row, err := r.queries.GetReferralCodeByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("referral code not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve referral code", err)
	}
	return row.UserID, nil
}

func (r *ReferralRepository) CreateCode(ctx context.Context, userID uuid.UUID, code string, now time.Time) (bool, error) {
	n, err := r.queries.CreateReferralCode(ctx, r.db, sqlc.CreateReferralCodeParams{
		UserID:    userID,
		Code:      code,
		CreatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to create referral code", err)
	}
	return n == 1, nil
}

func (r *ReferralRepository) FindReferrer(ctx context.Context, referredID uuid.UUID) (*uuid.UUID, error) {
	row, err := r.queries.GetReferralEdge(ctx, r.db, referredID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get referral edge", err)
	}
	referrer := row.ReferrerID
	return &referrer, nil
}

func (r *ReferralRepository) CreateEdge(ctx context.Context, referredID, referrerID uuid.UUID, code string, now time.Time) (bool, error) {
	n, err := r.queries.CreateReferralEdge(ctx, r.db, sqlc.CreateReferralEdgeParams{
		ReferredID: referredID,
		ReferrerID: referrerID,
		Code:       code,
		CreatedAt:  pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to create referral edge", err)
	}
	return n == 1, nil
}
