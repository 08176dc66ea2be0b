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
	"github.com/google/uuid"
)

type ClaimHandler struct {
	cmds commands.ClaimCommands
	q    queries.ClaimQueries
}

func NewClaimHandler(cmds commands.ClaimCommands, q queries.ClaimQueries) *ClaimHandler {
	return &ClaimHandler{cmds: cmds, q: q}
}

// @Summary Claim an offer
// @Description Commit an offer to one item on the member's list
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClaimRequest true "Claim request"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	cl, err := h.cmds.CreateClaim(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Header("Location", "/api/claims/"+cl.ID().String())
	c.JSON(http.StatusCreated, resdto.FromClaim(cl))
}

// @Summary List my claims
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Router /api/claims [get]
func (h *ClaimHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}
	var q reqdto.ListClaimsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.ListMine(c.Request.Context(), userID, q.Status, q.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaimViews(views))
}

// @Summary Cancel a claim
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/claims/{id}/cancel [post]
func (h *ClaimHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}

	cl, err := h.cmds.CancelClaim(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaim(cl))
}
