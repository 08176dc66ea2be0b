package converter

import (
	"redemption-ledger/internal/domain/redemption"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
)

func MatchToInsertParams(m *redemption.Match) sqlc.InsertReceiptMatchParams {
	return sqlc.InsertReceiptMatchParams{
		ReceiptID:     m.ReceiptID,
		ClaimID:       m.ClaimID,
		LineItemIndex: pgconv.IntToInt32(m.LineIndex),
		Confidence:    m.Confidence,
		Outcome:       m.Outcome.String(),
		CreatedAt:     pgconv.TimeToPgtype(m.CreatedAt),
	}
}

func MatchToUpdateParams(m *redemption.Match) sqlc.UpdateReceiptMatchParams {
	return sqlc.UpdateReceiptMatchParams{
		ReceiptID:   m.ReceiptID,
		ClaimID:     m.ClaimID,
		Outcome:     m.Outcome.String(),
		Reason:      pgconv.TextOrNull(m.Reason),
		CreditMinor: pgconv.Int64PtrToPgtype(m.CreditMinor),
		Attempts:    pgconv.IntToInt32(m.Attempts),
		UpdatedAt:   pgconv.TimeToPgtype(m.UpdatedAt),
	}
}

func MatchFromRow(row sqlc.ReceiptMatches) *redemption.Match {
	return &redemption.Match{
		ReceiptID:   row.ReceiptID,
		ClaimID:     row.ClaimID,
		LineIndex:   int(row.LineItemIndex),
		Confidence:  row.Confidence,
		Outcome:     redemption.Outcome(row.Outcome),
		Reason:      pgconv.StringFromPgtype(row.Reason),
		CreditMinor: pgconv.Int64PtrFromPgtype(row.CreditMinor),
		Attempts:    int(row.Attempts),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
