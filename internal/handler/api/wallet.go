package api

import (
	"net/http"

	reqdto "redemption-ledger/internal/handler/dto/request"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	ledger commands.LedgerCommands
	q      queries.WalletQueries
}

func NewWalletHandler(ledger commands.LedgerCommands, q queries.WalletQueries) *WalletHandler {
	return &WalletHandler{ledger: ledger, q: q}
}

// @Summary Wallet summary
// @Description Current balance and the latest transactions
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WalletResponse
// @Router /api/wallet [get]
func (h *WalletHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	view, err := h.q.Summary(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWalletView(view))
}

// @Summary Transaction history
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Max items"
// @Success 200 {object} resdto.PageResponse[resdto.TransactionResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/wallet/transactions [get]
func (h *WalletHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var q reqdto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	rows, next, err := h.q.Transactions(c.Request.Context(), userID, cursor, q.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	page := resdto.PageResponse[*resdto.TransactionResponse]{Items: resdto.FromTransactionViews(rows)}
	if next != nil {
		page.NextCursor = next.After
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Request a payout
// @Description Debit the wallet. Repeating a request id returns the original transaction.
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PayoutRequest true "Payout request"
// @Success 201 {object} resdto.TransactionResponse
// @Success 200 {object} resdto.TransactionResponse "Replayed request"
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/wallet/payouts [post]
func (h *WalletHandler) Payout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var req reqdto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.ledger.Payout(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(createdOrOK(res.Created), resdto.FromTransaction(res.Transaction))
}

func createdOrOK(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
