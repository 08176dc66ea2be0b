package api

import (
	"net/http"

	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	q queries.OfferQueries
}

func NewOfferHandler(q queries.OfferQueries) *OfferHandler {
	return &OfferHandler{q: q}
}

// @Summary List offers
// @Description List offers that can currently be claimed
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OfferResponse
// @Failure 401 {object} httperr.Response
// @Router /api/offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	views, err := h.q.ListActive(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferViews(views))
}
