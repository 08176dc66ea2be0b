// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: referrals.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReferralCode = `-- name: CreateReferralCode :execrows
INSERT INTO referral_codes (user_id, code, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO NOTHING
`

type CreateReferralCodeParams struct {
	UserID    uuid.UUID          `json:"user_id"`
	Code      string             `json:"code"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateReferralCode(ctx context.Context, db DBTX, arg CreateReferralCodeParams) (int64, error) {
	result, err := db.Exec(ctx, createReferralCode, arg.UserID, arg.Code, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createReferralEdge = `-- name: CreateReferralEdge :execrows
INSERT INTO referral_edges (referred_id, referrer_id, code, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (referred_id) DO NOTHING
`

type CreateReferralEdgeParams struct {
	ReferredID uuid.UUID          `json:"referred_id"`
	ReferrerID uuid.UUID          `json:"referrer_id"`
	Code       string             `json:"code"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateReferralEdge(ctx context.Context, db DBTX, arg CreateReferralEdgeParams) (int64, error) {
	result, err := db.Exec(ctx, createReferralEdge,
		arg.ReferredID,
		arg.ReferrerID,
		arg.Code,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReferralCodeByCode = `-- name: GetReferralCodeByCode :one
SELECT user_id, code, created_at FROM referral_codes
WHERE code = $1
`

func (q *Queries) GetReferralCodeByCode(ctx context.Context, db DBTX, code string) (ReferralCodes, error) {
	row := db.QueryRow(ctx, getReferralCodeByCode, code)
	var i ReferralCodes
	err := row.Scan(&i.UserID, &i.Code, &i.CreatedAt)
	return i, err
}

const getReferralCodeByUser = `-- name: GetReferralCodeByUser :one
SELECT user_id, code, created_at FROM referral_codes
WHERE user_id = $1
`

func (q *Queries) GetReferralCodeByUser(ctx context.Context, db DBTX, userID uuid.UUID) (ReferralCodes, error) {
	row := db.QueryRow(ctx, getReferralCodeByUser, userID)
	var i ReferralCodes
	err := row.Scan(&i.UserID, &i.Code, &i.CreatedAt)
	return i, err
}

const getReferralEdge = `-- name: GetReferralEdge :one
SELECT referred_id, referrer_id, code, created_at FROM referral_edges
WHERE referred_id = $1
`

func (q *Queries) GetReferralEdge(ctx context.Context, db DBTX, referredID uuid.UUID) (ReferralEdges, error) {
	row := db.QueryRow(ctx, getReferralEdge, referredID)
	var i ReferralEdges
	err := row.Scan(
		&i.ReferredID,
		&i.ReferrerID,
		&i.Code,
		&i.CreatedAt,
	)
	return i, err
}
