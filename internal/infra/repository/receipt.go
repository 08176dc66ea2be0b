package repository

import (
	"context"
	"time"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/infra/repository/converter"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReceiptWriteQueries interface {
	InsertReceiptImage(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReceiptImageParams) error
	GetReceiptImage(ctx context.Context, db sqlc.DBTX, digest string) ([]byte, error)
	CreateReceipt(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReceiptParams) (sqlc.Receipts, error)
	GetReceiptByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Receipts, error)
	GetReceiptByImageDigest(ctx context.Context, db sqlc.DBTX, imageDigest string) (sqlc.Receipts, error)
	GetReceiptByFingerprint(ctx context.Context, db sqlc.DBTX, fingerprint pgtype.Text) (sqlc.Receipts, error)
	UpdateReceipt(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReceiptParams) error
	PurgeReceiptsBefore(ctx context.Context, db sqlc.DBTX, cutoff pgtype.Timestamptz) (int64, error)
	DeleteOrphanReceiptImages(ctx context.Context, db sqlc.DBTX) (int64, error)
}

type ReceiptRepository struct {
	queries ReceiptWriteQueries
	db      sqlc.DBTX
}

func NewReceiptRepository(queries ReceiptWriteQueries, db sqlc.DBTX) *ReceiptRepository {
	return &ReceiptRepository{
		queries: queries,
		db:      db,
	}
}

// Create stores the image and the receipt row. A second receipt for the same
// image fails with KindDuplicateKey.
func (r *ReceiptRepository) Create(ctx context.Context, rc *receipt.Receipt, image []byte) error {
	err := r.queries.InsertReceiptImage(ctx, r.db, sqlc.InsertReceiptImageParams{
		Digest:  rc.ImageDigest(),
		Content: image,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to store receipt image", err)
	}
	if _, err := r.queries.CreateReceipt(ctx, r.db, converter.ReceiptToCreateParams(rc)); err != nil {
		return infra.WrapRepoErr("failed to create receipt", err)
	}
	return nil
}

func (r *ReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	row, err := r.queries.GetReceiptByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get receipt", err)
	}
	return r.toDomain(row)
}

func (r *ReceiptRepository) FindByImageDigest(ctx context.Context, digest string) (*receipt.Receipt, error) {
	row, err := r.queries.GetReceiptByImageDigest(ctx, r.db, digest)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get receipt by image digest", err)
	}
	return r.toDomain(row)
}

func (r *ReceiptRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*receipt.Receipt, error) {
	row, err := r.queries.GetReceiptByFingerprint(ctx, r.db, pgconv.StringToPgtype(fingerprint))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get receipt by fingerprint", err)
	}
	return r.toDomain(row)
}

func (r *ReceiptRepository) LoadImage(ctx context.Context, digest string) ([]byte, error) {
	content, err := r.queries.GetReceiptImage(ctx, r.db, digest)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt image not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load receipt image", err)
	}
	return content, nil
}

// Save fails with KindDuplicateKey when another receipt holds the fingerprint.
func (r *ReceiptRepository) Save(ctx context.Context, rc *receipt.Receipt) error {
	params, err := converter.ReceiptToUpdateParams(rc)
	if err != nil {
		return infra.WrapRepoErr("failed to convert receipt", err)
	}
	if err := r.queries.UpdateReceipt(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to update receipt", err)
	}
	return nil
}

func (r *ReceiptRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.PurgeReceiptsBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge receipts", err)
	}
	if _, err := r.queries.DeleteOrphanReceiptImages(ctx, r.db); err != nil {
		return 0, infra.WrapRepoErr("failed to purge receipt images", err)
	}
	return n, nil
}

func (r *ReceiptRepository) toDomain(row sqlc.Receipts) (*receipt.Receipt, error) {
	rc, err := converter.ReceiptFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert receipt row", err)
	}
	return rc, nil
}
