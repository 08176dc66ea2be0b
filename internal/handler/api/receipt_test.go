//go:build unit

package api_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"redemption-ledger/internal/domain/auth"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/handler/api"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"
	"redemption-ledger/tests/common/httptest"
	commandsmock "redemption-ledger/tests/mock/commands"
	queriesmock "redemption-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReceiptHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReceiptCommands
	mockQueries  *queriesmock.MockReceiptQueries
	userID       uuid.UUID
}

func (s *ReceiptHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReceiptCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReceiptQueries(s.mockCtrl)
	s.userID = uuid.New()

	cfg := config.NewTestConfig()
	cfg.Redemption.MaxImageBytes = 64
	h := api.NewReceiptHandler(s.mockCommands, s.mockQueries, cfg)

	authMw := fakeAuth(s.userID, auth.RoleMember)
	s.router.POST("/receipts", authMw, h.Submit)
	s.router.GET("/receipts/:id", authMw, h.Get)
}

func (s *ReceiptHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReceiptHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}

func (s *ReceiptHandlerTestSuite) TestSubmit() {
	image := []byte("jpeg-bytes")
	receiptID := uuid.New()

	s.Run("success: accepted returns 202", func() {
		s.mockCommands.EXPECT().SubmitReceipt(gomock.Any(), s.userID, image).
			Return(&commands.SubmitReceiptResult{ReceiptID: receiptID, Status: receipt.StatusAccepted}, nil)

		rec := httptest.PerformUpload(s.T(), s.router, "/receipts", "image", image, "bearer-token")

		var body resdto.SubmitReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal(receiptID.String(), body.ReceiptID)
		s.Equal("accepted", body.Status)
		httptest.AssertLocation(s.T(), rec, "/api/receipts/"+receiptID.String())
	})

	s.Run("success: duplicate returns 200 with the first receipt", func() {
		s.mockCommands.EXPECT().SubmitReceipt(gomock.Any(), s.userID, image).
			Return(&commands.SubmitReceiptResult{
				ReceiptID: receiptID,
				Status:    receipt.StatusDuplicate,
				Message:   commands.DuplicateReceiptMessage,
			}, nil)

		rec := httptest.PerformUpload(s.T(), s.router, "/receipts", "image", image, "bearer-token")

		var body resdto.SubmitReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("duplicate", body.Status)
		s.Equal(commands.DuplicateReceiptMessage, body.Message)
	})

	s.Run("error: 400 without image field", func() {
		rec := httptest.PerformUpload(s.T(), s.router, "/receipts", "photo", image, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Field image is required")
	})

	s.Run("error: 413 on oversized image", func() {
		rec := httptest.PerformUpload(s.T(), s.router, "/receipts", "image", bytes.Repeat([]byte("x"), 65), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusRequestEntityTooLarge, "too large")
	})

	s.Run("error: empty image is a validation failure", func() {
		s.mockCommands.EXPECT().SubmitReceipt(gomock.Any(), s.userID, gomock.Len(0)).
			Return(nil, errs.Mark(receipt.ErrEmptyImage, errs.ErrValidation))

		rec := httptest.PerformUpload(s.T(), s.router, "/receipts", "image", []byte{}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *ReceiptHandlerTestSuite) TestGet() {
	receiptID := uuid.New()
	processed := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	credit := int64(150)
	reason := "not on receipt"

	s.Run("success: returns outcomes", func() {
		s.mockQueries.EXPECT().GetOutcome(gomock.Any(), receiptID, s.userID).Return(&queries.ReceiptOutcomeView{
			Receipt: &queries.ReceiptView{ID: receiptID, SubmitterID: s.userID, Status: "processed", ProcessedAt: &processed},
			Outcomes: []*queries.ClaimOutcome{
				{ClaimID: uuid.New(), Outcome: "credited", ClaimStatus: "redeemed", CreditMinor: &credit, Attempts: 1},
				{ClaimID: uuid.New(), Outcome: queries.OutcomeUnmatched, ClaimStatus: "claimed", Reason: &reason},
			},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/receipts/"+receiptID.String(), nil, "bearer-token")

		var body resdto.ReceiptOutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("processed", body.Status)
		s.Require().Len(body.Outcomes, 2)
		s.Equal(credit, *body.Outcomes[0].CreditMinor)
		s.Equal(queries.OutcomeUnmatched, body.Outcomes[1].Outcome)
		s.Equal(processed.Unix(), *body.ProcessedAt)
	})

	s.Run("error: someone else's receipt is not found", func() {
		s.mockQueries.EXPECT().GetOutcome(gomock.Any(), receiptID, s.userID).
			Return(nil, errs.Mark(errs.New("receipt not found"), errs.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/receipts/"+receiptID.String(), nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/receipts/123", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
