//go:build unit || e2e

package builder

import (
	"time"

	"redemption-ledger/internal/domain/receipt"

	"github.com/google/uuid"
)

type ReceiptBuilder struct {
	SubmitterID  uuid.UUID
	Image        []byte
	SubmittedAt  time.Time
	StoreName    string
	PurchaseDate time.Time
	LineItems    []receipt.LineItem
	TotalMinor   int64
}

func NewReceiptBuilder() *ReceiptBuilder {
	submitted := time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC)
	return &ReceiptBuilder{
		SubmitterID:  uuid.New(),
		Image:        []byte("receipt-image-" + uuid.NewString()),
		SubmittedAt:  submitted,
		StoreName:    "Green Valley Market",
		PurchaseDate: submitted.Add(-26 * time.Hour),
		LineItems: []receipt.LineItem{
			{Description: "ORGANIC WHOLE MILK 1GAL", PriceMinor: 549, Quantity: 1},
			{Description: "Sourdough Bread", PriceMinor: 425, Quantity: 1},
		},
		TotalMinor: 974,
	}
}

func (b *ReceiptBuilder) With(mutate func(*ReceiptBuilder)) *ReceiptBuilder {
	mutate(b)
	return b
}

func (b *ReceiptBuilder) BySubmitter(id uuid.UUID) *ReceiptBuilder {
	b.SubmitterID = id
	return b
}

func (b *ReceiptBuilder) WithLineItems(items ...receipt.LineItem) *ReceiptBuilder {
	b.LineItems = items
	var total int64
	for _, li := range items {
		total += li.PriceMinor
	}
	b.TotalMinor = total
	return b
}

func (b *ReceiptBuilder) PurchasedDaysAgo(days int) *ReceiptBuilder {
	b.PurchaseDate = b.SubmittedAt.AddDate(0, 0, -days)
	return b
}

func (b *ReceiptBuilder) BuildExtraction() receipt.Extraction {
	return receipt.Extraction{
		StoreName:    b.StoreName,
		PurchaseDate: b.PurchaseDate,
		LineItems:    append([]receipt.LineItem(nil), b.LineItems...),
		TotalMinor:   b.TotalMinor,
	}
}

// BuildDomain returns a freshly accepted receipt for the builder's image.
func (b *ReceiptBuilder) BuildDomain() *receipt.Receipt {
	r, err := receipt.New(b.SubmitterID, b.Image, 0, b.SubmittedAt)
	if err != nil {
		panic(err)
	}
	return r
}
