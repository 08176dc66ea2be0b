package httperr

import (
	"net/http"

	"redemption-ledger/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, msg, "", detail)
}

type mapping struct {
	target error
	status int
	code   string
	msg    string
}

// Order matters: the first sentinel err carries wins.
var taxonomy = []mapping{
	{errs.ErrValidation, http.StatusBadRequest, "validation", "Invalid request"},
	{errs.ErrNotFound, http.StatusNotFound, "not_found", "Not found"},
	{errs.ErrSlotAlreadyClaimed, http.StatusConflict, "slot_already_claimed", "This item already has an open claim"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "Claim can no longer change"},
	{errs.ErrOfferUnavailable, http.StatusUnprocessableEntity, "offer_unavailable", "Offer is not available"},
	{errs.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds", "Insufficient funds"},
	{errs.ErrReferenceConflict, http.StatusConflict, "reference_conflict", "This reference was already used for a different transaction"},
	{errs.ErrReferralCodeUnknown, http.StatusNotFound, "referral_code_unknown", "Unknown referral code"},
	{errs.ErrSelfReferral, http.StatusUnprocessableEntity, "self_referral", "You cannot refer yourself"},
	{errs.ErrDuplicateReceipt, http.StatusConflict, "duplicate_receipt", "Looks like you already submitted this receipt!"},
	{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "gateway_unavailable", "Redemption service unavailable"},
}

// Status maps err onto the shared error taxonomy. Unknown errors are 500s.
func Status(err error) (int, string, string) {
	for _, m := range taxonomy {
		if errs.Is(err, m.target) {
			return m.status, m.code, m.msg
		}
	}
	return http.StatusInternalServerError, "internal", "Internal server error"
}

// AbortWithDomainError picks the status from err's taxonomy mark.
func AbortWithDomainError(c *gin.Context, err error) {
	status, code, msg := Status(err)
	abort(c, status, err, msg, code, nil)
}

func abort(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
