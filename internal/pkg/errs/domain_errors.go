package errs

import "errors"

// Error taxonomy shared by the usecase and handler layers
var (
	// Submission errors
	ErrValidation       = errors.New("validation error")
	ErrDuplicateReceipt = errors.New("duplicate receipt")
	ErrStaleReceipt     = errors.New("stale receipt")
	ErrNoConfidentMatch = errors.New("no confident match")

	// Redemption authority errors
	ErrGatewayUnavailable = errors.New("redemption gateway unavailable")
	ErrGatewayRejected    = errors.New("redemption rejected by authority")

	// Claim errors
	ErrSlotAlreadyClaimed = errors.New("slot already claimed")
	ErrInvalidTransition  = errors.New("invalid claim transition")
	ErrOfferUnavailable   = errors.New("offer not available")

	// Ledger errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrReferenceConflict = errors.New("ledger reference conflict")

	// Referral errors
	ErrReferralCodeUnknown = errors.New("unknown referral code")
	ErrSelfReferral        = errors.New("self referral")

	// Lookup and operation errors
	ErrNotFound                = errors.New("not found")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
