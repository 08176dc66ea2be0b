package api

import (
	"net/http"
	"strconv"

	reqdto "redemption-ledger/internal/handler/dto/request"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves operator-only endpoints.
type AdminHandler struct {
	ledger commands.LedgerCommands
	claims queries.ClaimQueries
}

func NewAdminHandler(ledger commands.LedgerCommands, claims queries.ClaimQueries) *AdminHandler {
	return &AdminHandler{ledger: ledger, claims: claims}
}

// @Summary Ledger adjustment
// @Description Signed operator correction, idempotent by reference id
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdjustmentRequest true "Adjustment"
// @Success 201 {object} resdto.TransactionResponse
// @Success 200 {object} resdto.TransactionResponse "Replayed reference"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/adjustments [post]
func (h *AdminHandler) Adjust(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var req reqdto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.ledger.Adjust(c.Request.Context(), operatorID, req.ToCommand())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(createdOrOK(res.Created), resdto.FromTransaction(res.Transaction))
}

// @Summary Claims awaiting review
// @Description Claims whose redemption retries were exhausted
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.FlaggedClaimResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/claims/review [get]
func (h *AdminHandler) FlaggedClaims(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid limit"), "Invalid limit", nil)
			return
		}
		limit = n
	}

	views, err := h.claims.ListFlagged(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFlaggedClaimViews(views))
}
