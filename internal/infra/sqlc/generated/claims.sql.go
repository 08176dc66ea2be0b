// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: claims.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createClaim = `-- name: CreateClaim :one
INSERT INTO claims (id, offer_id, list_item_id, claimant_id, status, created_at, expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, offer_id, list_item_id, claimant_id, status, created_at, expires_at, updated_at, resolved_at, receipt_id, reason, review_flagged_at
`

type CreateClaimParams struct {
	ID         uuid.UUID          `json:"id"`
	OfferID    uuid.UUID          `json:"offer_id"`
	ListItemID uuid.UUID          `json:"list_item_id"`
	ClaimantID uuid.UUID          `json:"claimant_id"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	ExpiresAt  pgtype.Timestamptz `json:"expires_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateClaim(ctx context.Context, db DBTX, arg CreateClaimParams) (Claims, error) {
	row := db.QueryRow(ctx, createClaim,
		arg.ID,
		arg.OfferID,
		arg.ListItemID,
		arg.ClaimantID,
		arg.Status,
		arg.CreatedAt,
		arg.ExpiresAt,
		arg.UpdatedAt,
	)
	var i Claims
	err := row.Scan(
		&i.ID,
		&i.OfferID,
		&i.ListItemID,
		&i.ClaimantID,
		&i.Status,
		&i.CreatedAt,
		&i.ExpiresAt,
		&i.UpdatedAt,
		&i.ResolvedAt,
		&i.ReceiptID,
		&i.Reason,
		&i.ReviewFlaggedAt,
	)
	return i, err
}

const expireOverdueClaims = `-- name: ExpireOverdueClaims :execrows
UPDATE claims
SET status = 'expired',
    updated_at = $1::timestamptz,
    resolved_at = $1::timestamptz,
    reason = 'claim expired'
WHERE status = 'claimed'
  AND expires_at <= $1::timestamptz
`

func (q *Queries) ExpireOverdueClaims(ctx context.Context, db DBTX, now pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, expireOverdueClaims, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getClaimByID = `-- name: GetClaimByID :one
SELECT id, offer_id, list_item_id, claimant_id, status, created_at, expires_at, updated_at, resolved_at, receipt_id, reason, review_flagged_at FROM claims
WHERE id = $1
`

func (q *Queries) GetClaimByID(ctx context.Context, db DBTX, id uuid.UUID) (Claims, error) {
	row := db.QueryRow(ctx, getClaimByID, id)
	var i Claims
	err := row.Scan(
		&i.ID,
		&i.OfferID,
		&i.ListItemID,
		&i.ClaimantID,
		&i.Status,
		&i.CreatedAt,
		&i.ExpiresAt,
		&i.UpdatedAt,
		&i.ResolvedAt,
		&i.ReceiptID,
		&i.Reason,
		&i.ReviewFlaggedAt,
	)
	return i, err
}

const getClaimForUpdate = `-- name: GetClaimForUpdate :one
SELECT id, offer_id, list_item_id, claimant_id, status, created_at, expires_at, updated_at, resolved_at, receipt_id, reason, review_flagged_at FROM claims
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetClaimForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Claims, error) {
	row := db.QueryRow(ctx, getClaimForUpdate, id)
	var i Claims
	err := row.Scan(
		&i.ID,
		&i.OfferID,
		&i.ListItemID,
		&i.ClaimantID,
		&i.Status,
		&i.CreatedAt,
		&i.ExpiresAt,
		&i.UpdatedAt,
		&i.ResolvedAt,
		&i.ReceiptID,
		&i.Reason,
		&i.ReviewFlaggedAt,
	)
	return i, err
}

const listClaimsByClaimant = `-- name: ListClaimsByClaimant :many
SELECT c.id, c.offer_id, c.list_item_id, c.claimant_id, c.status, c.created_at, c.expires_at, c.updated_at, c.resolved_at, c.receipt_id, c.reason, c.review_flagged_at, o.target_description, o.category, o.savings_minor
FROM claims c
JOIN offers o ON o.id = c.offer_id
WHERE c.claimant_id = $1
  AND ($2::text IS NULL OR c.status = $2::text)
ORDER BY c.created_at DESC, c.id DESC
LIMIT $3
`

type ListClaimsByClaimantParams struct {
	ClaimantID uuid.UUID   `json:"claimant_id"`
	Status     pgtype.Text `json:"status"`
	RowLimit   int32       `json:"row_limit"`
}

type ListClaimsByClaimantRow struct {
	ID                uuid.UUID          `json:"id"`
	OfferID           uuid.UUID          `json:"offer_id"`
	ListItemID        uuid.UUID          `json:"list_item_id"`
	ClaimantID        uuid.UUID          `json:"claimant_id"`
	Status            string             `json:"status"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	ExpiresAt         pgtype.Timestamptz `json:"expires_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ResolvedAt        pgtype.Timestamptz `json:"resolved_at"`
	ReceiptID         pgtype.UUID        `json:"receipt_id"`
	Reason            pgtype.Text        `json:"reason"`
	ReviewFlaggedAt   pgtype.Timestamptz `json:"review_flagged_at"`
	TargetDescription string             `json:"target_description"`
	Category          string             `json:"category"`
	SavingsMinor      int64              `json:"savings_minor"`
}

func (q *Queries) ListClaimsByClaimant(ctx context.Context, db DBTX, arg ListClaimsByClaimantParams) ([]ListClaimsByClaimantRow, error) {
	rows, err := db.Query(ctx, listClaimsByClaimant, arg.ClaimantID, arg.Status, arg.RowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListClaimsByClaimantRow{}
	for rows.Next() {
		var i ListClaimsByClaimantRow
		if err := rows.Scan(
			&i.ID,
			&i.OfferID,
			&i.ListItemID,
			&i.ClaimantID,
			&i.Status,
			&i.CreatedAt,
			&i.ExpiresAt,
			&i.UpdatedAt,
			&i.ResolvedAt,
			&i.ReceiptID,
			&i.Reason,
			&i.ReviewFlaggedAt,
			&i.TargetDescription,
			&i.Category,
			&i.SavingsMinor,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listFlaggedClaims = `-- name: ListFlaggedClaims :many
SELECT c.id, c.offer_id, c.list_item_id, c.claimant_id, c.status, c.created_at, c.expires_at, c.updated_at, c.resolved_at, c.receipt_id, c.reason, c.review_flagged_at, o.target_description, o.category, o.savings_minor
FROM claims c
JOIN offers o ON o.id = c.offer_id
WHERE c.status = 'claimed'
  AND c.review_flagged_at IS NOT NULL
ORDER BY c.review_flagged_at, c.id
LIMIT $1
`

type ListFlaggedClaimsRow struct {
	ID                uuid.UUID          `json:"id"`
	OfferID           uuid.UUID          `json:"offer_id"`
	ListItemID        uuid.UUID          `json:"list_item_id"`
	ClaimantID        uuid.UUID          `json:"claimant_id"`
	Status            string             `json:"status"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	ExpiresAt         pgtype.Timestamptz `json:"expires_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ResolvedAt        pgtype.Timestamptz `json:"resolved_at"`
	ReceiptID         pgtype.UUID        `json:"receipt_id"`
	Reason            pgtype.Text        `json:"reason"`
	ReviewFlaggedAt   pgtype.Timestamptz `json:"review_flagged_at"`
	TargetDescription string             `json:"target_description"`
	Category          string             `json:"category"`
	SavingsMinor      int64              `json:"savings_minor"`
}

func (q *Queries) ListFlaggedClaims(ctx context.Context, db DBTX, rowLimit int32) ([]ListFlaggedClaimsRow, error) {
	rows, err := db.Query(ctx, listFlaggedClaims, rowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListFlaggedClaimsRow{}
	for rows.Next() {
		var i ListFlaggedClaimsRow
		if err := rows.Scan(
			&i.ID,
			&i.OfferID,
			&i.ListItemID,
			&i.ClaimantID,
			&i.Status,
			&i.CreatedAt,
			&i.ExpiresAt,
			&i.UpdatedAt,
			&i.ResolvedAt,
			&i.ReceiptID,
			&i.Reason,
			&i.ReviewFlaggedAt,
			&i.TargetDescription,
			&i.Category,
			&i.SavingsMinor,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOpenClaimsWithOffers = `-- name: ListOpenClaimsWithOffers :many
SELECT c.id, c.created_at, c.offer_id, o.target_description, o.category
FROM claims c
JOIN offers o ON o.id = c.offer_id
WHERE c.claimant_id = $1
  AND c.status = 'claimed'
  AND c.expires_at > $2::timestamptz
ORDER BY c.created_at, c.id
`

type ListOpenClaimsWithOffersParams struct {
	ClaimantID uuid.UUID          `json:"claimant_id"`
	Now        pgtype.Timestamptz `json:"now"`
}

type ListOpenClaimsWithOffersRow struct {
	ID                uuid.UUID          `json:"id"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	OfferID           uuid.UUID          `json:"offer_id"`
	TargetDescription string             `json:"target_description"`
	Category          string             `json:"category"`
}

func (q *Queries) ListOpenClaimsWithOffers(ctx context.Context, db DBTX, arg ListOpenClaimsWithOffersParams) ([]ListOpenClaimsWithOffersRow, error) {
	rows, err := db.Query(ctx, listOpenClaimsWithOffers, arg.ClaimantID, arg.Now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListOpenClaimsWithOffersRow{}
	for rows.Next() {
		var i ListOpenClaimsWithOffersRow
		if err := rows.Scan(
			&i.ID,
			&i.CreatedAt,
			&i.OfferID,
			&i.TargetDescription,
			&i.Category,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateClaimState = `-- name: UpdateClaimState :exec
UPDATE claims
SET status = $2,
    updated_at = $3,
    resolved_at = $4,
    receipt_id = $5,
    reason = $6,
    review_flagged_at = $7
WHERE id = $1
`

type UpdateClaimStateParams struct {
	ID              uuid.UUID          `json:"id"`
	Status          string             `json:"status"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
	ResolvedAt      pgtype.Timestamptz `json:"resolved_at"`
	ReceiptID       pgtype.UUID        `json:"receipt_id"`
	Reason          pgtype.Text        `json:"reason"`
	ReviewFlaggedAt pgtype.Timestamptz `json:"review_flagged_at"`
}

func (q *Queries) UpdateClaimState(ctx context.Context, db DBTX, arg UpdateClaimStateParams) error {
	_, err := db.Exec(ctx, updateClaimState,
		arg.ID,
		arg.Status,
		arg.UpdatedAt,
		arg.ResolvedAt,
		arg.ReceiptID,
		arg.Reason,
		arg.ReviewFlaggedAt,
	)
	return err
}
