package api

import (
	"io"
	"net/http"

	"redemption-ledger/internal/domain/receipt"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/httperr"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// multipart framing allowance on top of the image itself
const multipartOverhead = 64 << 10

type ReceiptHandler struct {
	cmds     commands.ReceiptCommands
	q        queries.ReceiptQueries
	maxBytes int64
}

func NewReceiptHandler(cmds commands.ReceiptCommands, q queries.ReceiptQueries, cfg config.Config) *ReceiptHandler {
	return &ReceiptHandler{cmds: cmds, q: q, maxBytes: cfg.Redemption.MaxImageBytes}
}

// @Summary Submit a receipt
// @Description Upload a receipt image. Processing is asynchronous; poll the receipt for its outcome.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Receipt image"
// @Success 202 {object} resdto.SubmitReceiptResponse
// @Success 200 {object} resdto.SubmitReceiptResponse "Image was already submitted"
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/receipts [post]
func (h *ReceiptHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user"), "Unauthorized", nil)
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Image is too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Field image is required", nil)
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, receipt.ErrImageTooLarge, "Image is too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable upload", nil)
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable upload", nil)
		return
	}

	result, err := h.cmds.SubmitReceipt(c.Request.Context(), userID, image)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	status := http.StatusAccepted
	if result.Status == receipt.StatusDuplicate {
		status = http.StatusOK
	}
	c.Header("Location", "/api/receipts/"+result.ReceiptID.String())
	c.JSON(status, resdto.FromSubmitReceiptResult(result))
}

// @Summary Receipt outcome
// @Description Status, message and per-claim outcomes of a submitted receipt
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 200 {object} resdto.ReceiptOutcomeResponse
// @Failure 404 {object} httperr.Response
// @Router /api/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
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

	view, err := h.q.GetOutcome(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReceiptOutcome(view))
}
