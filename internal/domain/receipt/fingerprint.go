package receipt

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"redemption-ledger/internal/domain/matching"

	"github.com/zeebo/blake3"
)

// fingerprintSampleSize bounds how many line items feed the fingerprint so
// OCR noise on long receipts does not defeat duplicate detection.
const fingerprintSampleSize = 5

var fingerprintKey = [32]byte{
	'r', 'e', 'd', 'e', 'm', 'p', 't', 'i', 'o', 'n', '.', 'r', 'e', 'c', 'e', 'i',
	'p', 't', '.', 'f', 'p', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ImageDigest identifies the uploaded bytes themselves.
func ImageDigest(image []byte) string {
	sum := blake3.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// Fingerprint is a keyed BLAKE3 hash over the normalized store name, purchase
// date, total and a canonical sample of line items. Item order on the receipt
// does not affect it.
func Fingerprint(e Extraction) string {
	items := make([]string, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		items = append(items, matching.Clean(li.Description)+"|"+strconv.FormatInt(li.PriceMinor, 10)+"|"+strconv.Itoa(int(max(li.Quantity, 1))))
	}
	sort.Strings(items)
	if len(items) > fingerprintSampleSize {
		items = items[:fingerprintSampleSize]
	}

	var b strings.Builder
	b.WriteString(matching.Clean(e.StoreName))
	b.WriteByte('\n')
	b.WriteString(e.PurchaseDate.UTC().Format("2006-01-02"))
	b.WriteByte('\n')
	b.WriteString(strconv.FormatInt(e.TotalMinor, 10))
	for _, it := range items {
		b.WriteByte('\n')
		b.WriteString(it)
	}

	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("receipt: blake3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(b.String()))
	return hex.EncodeToString(hasher.Sum(nil))
}
