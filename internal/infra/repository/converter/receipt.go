package converter

import (
	"encoding/json"

	"redemption-ledger/internal/domain/receipt"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReceiptToCreateParams(r *receipt.Receipt) sqlc.CreateReceiptParams {
	return sqlc.CreateReceiptParams{
		ID:          r.ID(),
		SubmitterID: r.SubmitterID(),
		ImageDigest: r.ImageDigest(),
		Status:      r.Status().String(),
		SubmittedAt: pgconv.TimeToPgtype(r.SubmittedAt()),
	}
}

func ReceiptToUpdateParams(r *receipt.Receipt) (sqlc.UpdateReceiptParams, error) {
	params := sqlc.UpdateReceiptParams{
		ID:          r.ID(),
		Fingerprint: pgconv.TextOrNull(r.Fingerprint()),
		Status:      r.Status().String(),
		Message:     pgconv.TextOrNull(r.Message()),
		ProcessedAt: pgconv.TimePtrToPgtype(r.ProcessedAt()),
	}
	if ex := r.Extraction(); ex != nil {
		items, err := json.Marshal(ex.LineItems)
		if err != nil {
			return sqlc.UpdateReceiptParams{}, errs.Wrap(err, "failed to encode line items")
		}
		params.StoreName = pgconv.StringToPgtype(ex.StoreName)
		params.PurchaseDate = pgconv.TimeToPgtype(ex.PurchaseDate)
		params.TotalMinor = pgtype.Int8{Int64: ex.TotalMinor, Valid: true}
		params.LineItems = items
	}
	return params, nil
}

func ReceiptFromRow(row sqlc.Receipts) (*receipt.Receipt, error) {
	var extraction *receipt.Extraction
	if row.LineItems != nil {
		var items []receipt.LineItem
		if err := json.Unmarshal(row.LineItems, &items); err != nil {
			return nil, errs.Wrap(err, "failed to decode line items")
		}
		extraction = &receipt.Extraction{
			StoreName:    pgconv.StringFromPgtype(row.StoreName),
			PurchaseDate: pgconv.TimeFromPgtype(row.PurchaseDate),
			LineItems:    items,
			TotalMinor:   row.TotalMinor.Int64,
		}
	}
	return receipt.Reconstruct(receipt.ReconstructParams{
		ID:          row.ID,
		SubmitterID: row.SubmitterID,
		ImageDigest: row.ImageDigest,
		Fingerprint: pgconv.StringFromPgtype(row.Fingerprint),
		Status:      receipt.Status(row.Status),
		Message:     pgconv.StringFromPgtype(row.Message),
		Extraction:  extraction,
		SubmittedAt: pgconv.TimeFromPgtype(row.SubmittedAt),
		ProcessedAt: pgconv.TimePtrFromPgtype(row.ProcessedAt),
	}), nil
}
