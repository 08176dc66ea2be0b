//go:build unit

package httperr_test

import (
	"net/http"
	"testing"

	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		mark       error
		wantStatus int
		wantCode   string
	}{
		{errs.ErrValidation, http.StatusBadRequest, "validation"},
		{errs.ErrNotFound, http.StatusNotFound, "not_found"},
		{errs.ErrSlotAlreadyClaimed, http.StatusConflict, "slot_already_claimed"},
		{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{errs.ErrOfferUnavailable, http.StatusUnprocessableEntity, "offer_unavailable"},
		{errs.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
		{errs.ErrReferenceConflict, http.StatusConflict, "reference_conflict"},
		{errs.ErrReferralCodeUnknown, http.StatusNotFound, "referral_code_unknown"},
		{errs.ErrSelfReferral, http.StatusUnprocessableEntity, "self_referral"},
		{errs.ErrDuplicateReceipt, http.StatusConflict, "duplicate_receipt"},
		{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "gateway_unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			err := errs.Wrap(errs.Mark(errs.New("cause"), tt.mark), "outer")

			status, code, msg := httperr.Status(err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}

	t.Run("unmarked errors are internal", func(t *testing.T) {
		status, code, _ := httperr.Status(errs.New("db down"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "internal", code)
	})
}
