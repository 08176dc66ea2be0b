// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: offers.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getOfferByID = `-- name: GetOfferByID :one
SELECT id, provider_offer_id, category, target_description, savings_minor, max_redemptions, current_redemptions, is_active, expires_at, created_at FROM offers
WHERE id = $1
`

func (q *Queries) GetOfferByID(ctx context.Context, db DBTX, id uuid.UUID) (Offers, error) {
	row := db.QueryRow(ctx, getOfferByID, id)
	var i Offers
	err := row.Scan(
		&i.ID,
		&i.ProviderOfferID,
		&i.Category,
		&i.TargetDescription,
		&i.SavingsMinor,
		&i.MaxRedemptions,
		&i.CurrentRedemptions,
		&i.IsActive,
		&i.ExpiresAt,
		&i.CreatedAt,
	)
	return i, err
}

const incrementOfferRedemptions = `-- name: IncrementOfferRedemptions :execrows
UPDATE offers
SET current_redemptions = current_redemptions + 1
WHERE id = $1
  AND (max_redemptions IS NULL OR current_redemptions < max_redemptions)
`

func (q *Queries) IncrementOfferRedemptions(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, incrementOfferRedemptions, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listActiveOffers = `-- name: ListActiveOffers :many
SELECT id, provider_offer_id, category, target_description, savings_minor, max_redemptions, current_redemptions, is_active, expires_at, created_at FROM offers
WHERE is_active
  AND (expires_at IS NULL OR expires_at > $1::timestamptz)
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListActiveOffers(ctx context.Context, db DBTX, now pgtype.Timestamptz) ([]Offers, error) {
	rows, err := db.Query(ctx, listActiveOffers, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Offers{}
	for rows.Next() {
		var i Offers
		if err := rows.Scan(
			&i.ID,
			&i.ProviderOfferID,
			&i.Category,
			&i.TargetDescription,
			&i.SavingsMinor,
			&i.MaxRedemptions,
			&i.CurrentRedemptions,
			&i.IsActive,
			&i.ExpiresAt,
			&i.CreatedAt,
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
