// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: views.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listReceiptMatchViews = `-- name: ListReceiptMatchViews :many
SELECT m.claim_id, m.line_item_index, m.confidence, m.outcome, m.reason, m.credit_minor, m.attempts, m.updated_at,
       c.status AS claim_status, o.target_description
FROM receipt_matches m
JOIN claims c ON c.id = m.claim_id
JOIN offers o ON o.id = c.offer_id
WHERE m.receipt_id = $1
ORDER BY m.line_item_index, m.claim_id
`

type ListReceiptMatchViewsRow struct {
	ClaimID           uuid.UUID          `json:"claim_id"`
	LineItemIndex     int32              `json:"line_item_index"`
	Confidence        float64            `json:"confidence"`
	Outcome           string             `json:"outcome"`
	Reason            pgtype.Text        `json:"reason"`
	CreditMinor       pgtype.Int8        `json:"credit_minor"`
	Attempts          int32              `json:"attempts"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ClaimStatus       string             `json:"claim_status"`
	TargetDescription string             `json:"target_description"`
}

func (q *Queries) ListReceiptMatchViews(ctx context.Context, db DBTX, receiptID uuid.UUID) ([]ListReceiptMatchViewsRow, error) {
	rows, err := db.Query(ctx, listReceiptMatchViews, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListReceiptMatchViewsRow{}
	for rows.Next() {
		var i ListReceiptMatchViewsRow
		if err := rows.Scan(
			&i.ClaimID,
			&i.LineItemIndex,
			&i.Confidence,
			&i.Outcome,
			&i.Reason,
			&i.CreditMinor,
			&i.Attempts,
			&i.UpdatedAt,
			&i.ClaimStatus,
			&i.TargetDescription,
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
