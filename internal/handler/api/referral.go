package api

import (
	"net/http"

	reqdto "redemption-ledger/internal/handler/dto/request"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	cmds commands.ReferralCommands
}

func NewReferralHandler(cmds commands.ReferralCommands) *ReferralHandler {
	return &ReferralHandler{cmds: cmds}
}

// @Summary My referral code
// @Description Returns the caller's referral code, issuing one on first use
// @Tags referrals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReferralCodeResponse
// @Router /api/referrals/code [get]
func (h *ReferralHandler) Code(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	code, err := h.cmds.IssueCode(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ReferralCodeResponse{Code: code})
}

// @Summary Attribute a referrer
// @Description Record who referred the caller. The first attribution is kept.
// @Tags referrals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AttributeReferralRequest true "Referral code"
// @Success 201 {object} resdto.AttributionResponse
// @Success 200 {object} resdto.AttributionResponse "Already attributed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/referrals/attribute [post]
func (h *ReferralHandler) Attribute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var req reqdto.AttributeReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.cmds.Attribute(c.Request.Context(), userID, req.Code)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(createdOrOK(res.Created), resdto.AttributionResponse{
		ReferrerID: res.ReferrerID.String(),
		Created:    res.Created,
	})
}
