package receipt

import (
	"strings"
	"time"

	"redemption-ledger/internal/pkg/errs"
)

type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusProcessed  Status = "processed"
	StatusDuplicate  Status = "duplicate"
	StatusStale      Status = "stale"
	StatusUnreadable Status = "unreadable"
	StatusInvalid    Status = "invalid"
	StatusFailed     Status = "failed"
)

func (s Status) String() string { return string(s) }

// IsFinal reports whether no further processing will happen for the receipt.
func (s Status) IsFinal() bool {
	return s != StatusAccepted
}

type LineItem struct {
	Description string `json:"description"`
	PriceMinor  int64  `json:"price_minor_units"`
	Quantity    int32  `json:"quantity"`
}

// Extraction is the structured output of the OCR collaborator.
type Extraction struct {
	StoreName    string     `json:"store_name"`
	PurchaseDate time.Time  `json:"purchase_date"`
	LineItems    []LineItem `json:"line_items"`
	TotalMinor   int64      `json:"total_minor_units"`
}

var (
	ErrMissingStoreName    = errs.New("store name is missing")
	ErrMissingPurchaseDate = errs.New("purchase date is missing")
	ErrNegativeAmount      = errs.New("amounts must not be negative")
	ErrNoLineItems         = errs.New("receipt has no line items")
	ErrFuturePurchaseDate  = errs.New("purchase date is in the future")

	// ErrUnreadable is reported by readers that looked at an image and found
	// no receipt in it.
	ErrUnreadable = errs.New("receipt image is unreadable")
)

// futureSkew tolerates receipts printed in a timezone ahead of the server.
const futureSkew = 24 * time.Hour

func (e Extraction) Validate(submittedAt time.Time) error {
	var err error
	switch {
	case strings.TrimSpace(e.StoreName) == "":
		err = ErrMissingStoreName
	case e.PurchaseDate.IsZero():
		err = ErrMissingPurchaseDate
	case e.PurchaseDate.After(submittedAt.Add(futureSkew)):
		err = ErrFuturePurchaseDate
	case e.TotalMinor < 0:
		err = ErrNegativeAmount
	case len(e.LineItems) == 0:
		err = ErrNoLineItems
	}
	if err == nil {
		for _, li := range e.LineItems {
			if li.PriceMinor < 0 {
				err = ErrNegativeAmount
				break
			}
		}
	}
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	return nil
}

// IsStale reports whether the purchase happened more than maxAge before the
// receipt was submitted.
func (e Extraction) IsStale(submittedAt time.Time, maxAge time.Duration) bool {
	return e.PurchaseDate.Before(submittedAt.Add(-maxAge))
}
