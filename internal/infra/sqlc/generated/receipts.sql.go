// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: receipts.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReceipt = `-- name: CreateReceipt :one
INSERT INTO receipts (id, submitter_id, image_digest, status, submitted_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, submitter_id, image_digest, fingerprint, status, message, store_name, purchase_date, total_minor, line_items, submitted_at, processed_at
`

type CreateReceiptParams struct {
	ID          uuid.UUID          `json:"id"`
	SubmitterID uuid.UUID          `json:"submitter_id"`
	ImageDigest string             `json:"image_digest"`
	Status      string             `json:"status"`
	SubmittedAt pgtype.Timestamptz `json:"submitted_at"`
}

func (q *Queries) CreateReceipt(ctx context.Context, db DBTX, arg CreateReceiptParams) (Receipts, error) {
	row := db.QueryRow(ctx, createReceipt,
		arg.ID,
		arg.SubmitterID,
		arg.ImageDigest,
		arg.Status,
		arg.SubmittedAt,
	)
	var i Receipts
	err := row.Scan(
		&i.ID,
		&i.SubmitterID,
		&i.ImageDigest,
		&i.Fingerprint,
		&i.Status,
		&i.Message,
		&i.StoreName,
		&i.PurchaseDate,
		&i.TotalMinor,
		&i.LineItems,
		&i.SubmittedAt,
		&i.ProcessedAt,
	)
	return i, err
}

const deleteOrphanReceiptImages = `-- name: DeleteOrphanReceiptImages :execrows
DELETE FROM receipt_images i
WHERE NOT EXISTS (SELECT 1 FROM receipts r WHERE r.image_digest = i.digest)
`

func (q *Queries) DeleteOrphanReceiptImages(ctx context.Context, db DBTX) (int64, error) {
	result, err := db.Exec(ctx, deleteOrphanReceiptImages)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReceiptByFingerprint = `-- name: GetReceiptByFingerprint :one
SELECT id, submitter_id, image_digest, fingerprint, status, message, store_name, purchase_date, total_minor, line_items, submitted_at, processed_at FROM receipts
WHERE fingerprint = $1
`

func (q *Queries) GetReceiptByFingerprint(ctx context.Context, db DBTX, fingerprint pgtype.Text) (Receipts, error) {
	row := db.QueryRow(ctx, getReceiptByFingerprint, fingerprint)
	var i Receipts
	err := row.Scan(
		&i.ID,
		&i.SubmitterID,
		&i.ImageDigest,
		&i.Fingerprint,
		&i.Status,
		&i.Message,
		&i.StoreName,
		&i.PurchaseDate,
		&i.TotalMinor,
		&i.LineItems,
		&i.SubmittedAt,
		&i.ProcessedAt,
	)
	return i, err
}

const getReceiptByID = `-- name: GetReceiptByID :one
SELECT id, submitter_id, image_digest, fingerprint, status, message, store_name, purchase_date, total_minor, line_items, submitted_at, processed_at FROM receipts
WHERE id = $1
`

func (q *Queries) GetReceiptByID(ctx context.Context, db DBTX, id uuid.UUID) (Receipts, error) {
	row := db.QueryRow(ctx, getReceiptByID, id)
	var i Receipts
	err := row.Scan(
		&i.ID,
		&i.SubmitterID,
		&i.ImageDigest,
		&i.Fingerprint,
		&i.Status,
		&i.Message,
		&i.StoreName,
		&i.PurchaseDate,
		&i.TotalMinor,
		&i.LineItems,
		&i.SubmittedAt,
		&i.ProcessedAt,
	)
	return i, err
}

const getReceiptByImageDigest = `-- name: GetReceiptByImageDigest :one
SELECT id, submitter_id, image_digest, fingerprint, status, message, store_name, purchase_date, total_minor, line_items, submitted_at, processed_at FROM receipts
WHERE image_digest = $1
`

func (q *Queries) GetReceiptByImageDigest(ctx context.Context, db DBTX, imageDigest string) (Receipts, error) {
	row := db.QueryRow(ctx, getReceiptByImageDigest, imageDigest)
	var i Receipts
	err := row.Scan(
		&i.ID,
		&i.SubmitterID,
		&i.ImageDigest,
		&i.Fingerprint,
		&i.Status,
		&i.Message,
		&i.StoreName,
		&i.PurchaseDate,
		&i.TotalMinor,
		&i.LineItems,
		&i.SubmittedAt,
		&i.ProcessedAt,
	)
	return i, err
}

const getReceiptImage = `-- name: GetReceiptImage :one
SELECT content FROM receipt_images
WHERE digest = $1
`

func (q *Queries) GetReceiptImage(ctx context.Context, db DBTX, digest string) ([]byte, error) {
	row := db.QueryRow(ctx, getReceiptImage, digest)
	var content []byte
	err := row.Scan(&content)
	return content, err
}

const getReceiptMatch = `-- name: GetReceiptMatch :one
SELECT receipt_id, claim_id, line_item_index, confidence, outcome, reason, credit_minor, attempts, created_at, updated_at FROM receipt_matches
WHERE receipt_id = $1 AND claim_id = $2
`

type GetReceiptMatchParams struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
	ClaimID   uuid.UUID `json:"claim_id"`
}

func (q *Queries) GetReceiptMatch(ctx context.Context, db DBTX, arg GetReceiptMatchParams) (ReceiptMatches, error) {
	row := db.QueryRow(ctx, getReceiptMatch, arg.ReceiptID, arg.ClaimID)
	var i ReceiptMatches
	err := row.Scan(
		&i.ReceiptID,
		&i.ClaimID,
		&i.LineItemIndex,
		&i.Confidence,
		&i.Outcome,
		&i.Reason,
		&i.CreditMinor,
		&i.Attempts,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertReceiptImage = `-- name: InsertReceiptImage :exec
INSERT INTO receipt_images (digest, content)
VALUES ($1, $2)
ON CONFLICT (digest) DO NOTHING
`

type InsertReceiptImageParams struct {
	Digest  string `json:"digest"`
	Content []byte `json:"content"`
}

func (q *Queries) InsertReceiptImage(ctx context.Context, db DBTX, arg InsertReceiptImageParams) error {
	_, err := db.Exec(ctx, insertReceiptImage, arg.Digest, arg.Content)
	return err
}

const insertReceiptMatch = `-- name: InsertReceiptMatch :execrows
INSERT INTO receipt_matches (receipt_id, claim_id, line_item_index, confidence, outcome, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (receipt_id, claim_id) DO NOTHING
`

type InsertReceiptMatchParams struct {
	ReceiptID     uuid.UUID          `json:"receipt_id"`
	ClaimID       uuid.UUID          `json:"claim_id"`
	LineItemIndex int32              `json:"line_item_index"`
	Confidence    float64            `json:"confidence"`
	Outcome       string             `json:"outcome"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertReceiptMatch(ctx context.Context, db DBTX, arg InsertReceiptMatchParams) (int64, error) {
	result, err := db.Exec(ctx, insertReceiptMatch,
		arg.ReceiptID,
		arg.ClaimID,
		arg.LineItemIndex,
		arg.Confidence,
		arg.Outcome,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listReceiptMatches = `-- name: ListReceiptMatches :many
SELECT receipt_id, claim_id, line_item_index, confidence, outcome, reason, credit_minor, attempts, created_at, updated_at FROM receipt_matches
WHERE receipt_id = $1
ORDER BY line_item_index, claim_id
`

func (q *Queries) ListReceiptMatches(ctx context.Context, db DBTX, receiptID uuid.UUID) ([]ReceiptMatches, error) {
	rows, err := db.Query(ctx, listReceiptMatches, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ReceiptMatches{}
	for rows.Next() {
		var i ReceiptMatches
		if err := rows.Scan(
			&i.ReceiptID,
			&i.ClaimID,
			&i.LineItemIndex,
			&i.Confidence,
			&i.Outcome,
			&i.Reason,
			&i.CreditMinor,
			&i.Attempts,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const purgeReceiptsBefore = `-- name: PurgeReceiptsBefore :execrows
DELETE FROM receipts
WHERE submitted_at < $1::timestamptz
  AND status <> 'accepted'
`

func (q *Queries) PurgeReceiptsBefore(ctx context.Context, db DBTX, cutoff pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, purgeReceiptsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateReceipt = `-- name: UpdateReceipt :exec
UPDATE receipts
SET fingerprint = $2,
    status = $3,
    message = $4,
    store_name = $5,
    purchase_date = $6,
    total_minor = $7,
    line_items = $8,
    processed_at = $9
WHERE id = $1
`

type UpdateReceiptParams struct {
	ID           uuid.UUID          `json:"id"`
	Fingerprint  pgtype.Text        `json:"fingerprint"`
	Status       string             `json:"status"`
	Message      pgtype.Text        `json:"message"`
	StoreName    pgtype.Text        `json:"store_name"`
	PurchaseDate pgtype.Timestamptz `json:"purchase_date"`
	TotalMinor   pgtype.Int8        `json:"total_minor"`
	LineItems    []byte             `json:"line_items"`
	ProcessedAt  pgtype.Timestamptz `json:"processed_at"`
}

func (q *Queries) UpdateReceipt(ctx context.Context, db DBTX, arg UpdateReceiptParams) error {
	_, err := db.Exec(ctx, updateReceipt,
		arg.ID,
		arg.Fingerprint,
		arg.Status,
		arg.Message,
		arg.StoreName,
		arg.PurchaseDate,
		arg.TotalMinor,
		arg.LineItems,
		arg.ProcessedAt,
	)
	return err
}

const updateReceiptMatch = `-- name: UpdateReceiptMatch :exec
UPDATE receipt_matches
SET outcome = $3,
    reason = $4,
    credit_minor = $5,
    attempts = $6,
    updated_at = $7
WHERE receipt_id = $1 AND claim_id = $2
`

type UpdateReceiptMatchParams struct {
	ReceiptID   uuid.UUID          `json:"receipt_id"`
	ClaimID     uuid.UUID          `json:"claim_id"`
	Outcome     string             `json:"outcome"`
	Reason      pgtype.Text        `json:"reason"`
	CreditMinor pgtype.Int8        `json:"credit_minor"`
	Attempts    int32              `json:"attempts"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReceiptMatch(ctx context.Context, db DBTX, arg UpdateReceiptMatchParams) error {
	_, err := db.Exec(ctx, updateReceiptMatch,
		arg.ReceiptID,
		arg.ClaimID,
		arg.Outcome,
		arg.Reason,
		arg.CreditMinor,
		arg.Attempts,
		arg.UpdatedAt,
	)
	return err
}
