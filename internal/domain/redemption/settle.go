package redemption

import (
	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/domain/referral"

	"github.com/google/uuid"
)

// Approval is what the authority reports for an approved redemption.
type Approval struct {
	CreditMinor  int64
	MarginMinor  int64
	AuthorityRef string
}

// Settle lists the ledger entries an approved claim produces: the claimant's
// credit and, when a referrer exists, the referrer's share. Both reference
// the claim so each is written at most once.
func Settle(c *claim.Claim, approval Approval, referrer *uuid.UUID, policy *referral.Policy) []ledger.Entry {
	var entries []ledger.Entry
	if approval.CreditMinor > 0 {
		entries = append(entries, ledger.Entry{
			BeneficiaryID: c.ClaimantID(),
			Amount:        approval.CreditMinor,
			Kind:          ledger.KindRedemptionCredit,
			ReferenceID:   c.ID(),
			Memo:          "offer redemption",
		})
	}
	if referrer != nil && *referrer != c.ClaimantID() && policy != nil {
		if share := policy.ShareOf(approval.CreditMinor, approval.MarginMinor); share > 0 {
			entries = append(entries, ledger.Entry{
				BeneficiaryID: *referrer,
				Amount:        share,
				Kind:          ledger.KindReferralCredit,
				ReferenceID:   c.ID(),
				Memo:          "referral share",
			})
		}
	}
	return entries
}
