package referral

import (
	"crypto/rand"
	"strings"

	"redemption-ledger/internal/pkg/errs"
)

const CodeLength = 8

// codeAlphabet drops 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var ErrInvalidCode = errs.New("invalid referral code")

func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "generate referral code")
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func NormalizeCode(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != CodeLength {
		return "", errs.Mark(ErrInvalidCode, errs.ErrValidation)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", errs.Mark(ErrInvalidCode, errs.ErrValidation)
		}
	}
	return code, nil
}
