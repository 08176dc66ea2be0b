//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"redemption-ledger/internal/domain/auth"
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/handler/api"
	reqdto "redemption-ledger/internal/handler/dto/request"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"
	"redemption-ledger/tests/common/httptest"
	"redemption-ledger/tests/common/testutil"
	commandsmock "redemption-ledger/tests/mock/commands"
	queriesmock "redemption-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WalletHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockLedger   *commandsmock.MockLedgerCommands
	mockReferral *commandsmock.MockReferralCommands
	mockWallet   *queriesmock.MockWalletQueries
	mockClaims   *queriesmock.MockClaimQueries
	mockOffers   *queriesmock.MockOfferQueries
	userID       uuid.UUID
}

func (s *WalletHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedger = commandsmock.NewMockLedgerCommands(s.mockCtrl)
	s.mockReferral = commandsmock.NewMockReferralCommands(s.mockCtrl)
	s.mockWallet = queriesmock.NewMockWalletQueries(s.mockCtrl)
	s.mockClaims = queriesmock.NewMockClaimQueries(s.mockCtrl)
	s.mockOffers = queriesmock.NewMockOfferQueries(s.mockCtrl)
	s.userID = uuid.New()

	wallet := api.NewWalletHandler(s.mockLedger, s.mockWallet)
	referral := api.NewReferralHandler(s.mockReferral)
	admin := api.NewAdminHandler(s.mockLedger, s.mockClaims)
	offers := api.NewOfferHandler(s.mockOffers)

	member := fakeAuth(s.userID, auth.RoleMember)
	operator := fakeAuth(s.userID, auth.RoleOperator)
	s.router.GET("/wallet", member, wallet.Summary)
	s.router.GET("/wallet/transactions", member, wallet.Transactions)
	s.router.POST("/wallet/payouts", member, wallet.Payout)
	s.router.GET("/referrals/code", member, referral.Code)
	s.router.POST("/referrals/attribute", member, referral.Attribute)
	s.router.POST("/admin/adjustments", operator, admin.Adjust)
	s.router.GET("/admin/claims/review", operator, admin.FlaggedClaims)
	s.router.GET("/offers", member, offers.List)
}

func (s *WalletHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWalletHandlerSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}

func (s *WalletHandlerTestSuite) transaction(kind ledger.Kind, amount, balance int64) *ledger.Transaction {
	return &ledger.Transaction{
		ID:            uuid.New(),
		BeneficiaryID: s.userID,
		Amount:        amount,
		Kind:          kind,
		ReferenceID:   uuid.New(),
		BalanceAfter:  balance,
		CreatedAt:     time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
	}
}

// ================================================================================
// Wallet
// ================================================================================

func (s *WalletHandlerTestSuite) TestSummary() {
	s.mockWallet.EXPECT().Summary(gomock.Any(), s.userID).Return(&queries.WalletView{
		UserID:       s.userID,
		BalanceMinor: 165,
		Recent: []*queries.TransactionView{
			{ID: uuid.New(), Kind: "redemption-credit", AmountMinor: 150, BalanceAfter: 150},
			{ID: uuid.New(), Kind: "referral-credit", AmountMinor: 15, BalanceAfter: 165},
		},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet", nil, "bearer-token")

	var body resdto.WalletResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(int64(165), body.BalanceMinor)
	s.Len(body.Recent, 2)
}

func (s *WalletHandlerTestSuite) TestTransactions() {
	s.Run("first page returns next cursor", func() {
		s.mockWallet.EXPECT().Transactions(gomock.Any(), s.userID, nil, 2).
			Return([]*queries.TransactionView{{ID: uuid.New()}, {ID: uuid.New()}}, &queries.Cursor{After: "next-page"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet/transactions?limit=2", nil, "bearer-token")

		var body resdto.PageResponse[*resdto.TransactionResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("cursor is forwarded", func() {
		s.mockWallet.EXPECT().Transactions(gomock.Any(), s.userID, &queries.Cursor{After: "abc"}, 0).
			Return([]*queries.TransactionView{}, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet/transactions?after=abc", nil, "bearer-token")

		var body resdto.PageResponse[*resdto.TransactionResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Empty(body.NextCursor)
	})

	s.Run("malformed cursor is a 400", func() {
		s.mockWallet.EXPECT().Transactions(gomock.Any(), s.userID, gomock.Any(), 0).
			Return(nil, nil, errs.Mark(queries.ErrInvalidCursor, errs.ErrValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/wallet/transactions?after=zzz", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *WalletHandlerTestSuite) TestPayout() {
	reqBody := reqdto.PayoutRequest{RequestID: uuid.New(), AmountMinor: 100}
	tx := s.transaction(ledger.KindPayout, -100, 65)

	s.Run("first request is 201", func() {
		s.mockLedger.EXPECT().Payout(gomock.Any(), s.userID, commands.PayoutRequest{RequestID: reqBody.RequestID, AmountMinor: 100}).
			Return(&commands.CreditResult{Transaction: tx, Created: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/wallet/payouts", reqBody, "bearer-token")

		var body resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(-100), body.AmountMinor)
		s.Equal(int64(65), body.BalanceAfter)
		s.Equal("payout", body.Kind)
	})

	s.Run("replay is 200", func() {
		s.mockLedger.EXPECT().Payout(gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreditResult{Transaction: tx, Created: false}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/wallet/payouts", reqBody, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("overdraw is 422", func() {
		s.mockLedger.EXPECT().Payout(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("balance 65"), errs.ErrInsufficientFunds))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/wallet/payouts", reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Insufficient funds")
	})

	s.Run("validation", func() {
		cases := []testutil.Edit{
			testutil.Set("amount_minor", 0),
			testutil.Set("amount_minor", -5),
			testutil.Without("request_id"),
			testutil.Without("amount_minor"),
		}
		for _, mutate := range cases {
			body := testutil.Body(s.T(), reqBody, mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/wallet/payouts", body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})
}

// ================================================================================
// Referral
// ================================================================================

func (s *WalletHandlerTestSuite) TestReferralCode() {
	s.mockReferral.EXPECT().IssueCode(gomock.Any(), s.userID).Return("K7QX2MNP", nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/referrals/code", nil, "bearer-token")

	var body resdto.ReferralCodeResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("K7QX2MNP", body.Code)
}

func (s *WalletHandlerTestSuite) TestReferralAttribute() {
	referrer := uuid.New()

	s.Run("new edge is 201", func() {
		s.mockReferral.EXPECT().Attribute(gomock.Any(), s.userID, "K7QX2MNP").
			Return(&commands.AttributeResult{ReferrerID: referrer, Created: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/referrals/attribute",
			reqdto.AttributeReferralRequest{Code: "K7QX2MNP"}, "bearer-token")

		var body resdto.AttributionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(referrer.String(), body.ReferrerID)
		s.True(body.Created)
	})

	s.Run("existing edge is 200", func() {
		s.mockReferral.EXPECT().Attribute(gomock.Any(), s.userID, "OTHERCOD").
			Return(&commands.AttributeResult{ReferrerID: referrer, Created: false}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/referrals/attribute",
			reqdto.AttributeReferralRequest{Code: "OTHERCOD"}, "bearer-token")

		var body resdto.AttributionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Created)
	})

	s.Run("domain errors", func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{errs.Mark(errs.New("unknown"), errs.ErrReferralCodeUnknown), http.StatusNotFound, "referral_code_unknown"},
			{errs.Mark(errs.New("self"), errs.ErrSelfReferral), http.StatusUnprocessableEntity, "self_referral"},
		}
		for _, tc := range cases {
			s.mockReferral.EXPECT().Attribute(gomock.Any(), s.userID, "K7QX2MNP").Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/referrals/attribute",
				reqdto.AttributeReferralRequest{Code: "K7QX2MNP"}, "bearer-token")

			s.Equal(tc.status, rec.Code)
			s.Contains(rec.Body.String(), `"code":"`+tc.code+`"`)
		}
	})

	s.Run("missing code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/referrals/attribute", map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// Admin
// ================================================================================

func (s *WalletHandlerTestSuite) TestAdjust() {
	reqBody := reqdto.AdjustmentRequest{
		BeneficiaryID: uuid.New(),
		ReferenceID:   uuid.New(),
		AmountMinor:   -40,
		Memo:          "clawback for reversed purchase",
	}

	s.Run("operator adjustment is recorded", func() {
		s.mockLedger.EXPECT().Adjust(gomock.Any(), s.userID, commands.AdjustmentRequest{
			BeneficiaryID: reqBody.BeneficiaryID,
			ReferenceID:   reqBody.ReferenceID,
			AmountMinor:   -40,
			Memo:          reqBody.Memo,
		}).Return(&commands.CreditResult{Transaction: s.transaction(ledger.KindAdjustment, -40, -40), Created: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/adjustments", reqBody, "bearer-token")

		var body resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(-40), body.BalanceAfter)
	})

	s.Run("memo and non-zero amount are required", func() {
		for _, mutate := range []testutil.Edit{
			testutil.Without("memo"),
			testutil.Set("amount_minor", 0),
			testutil.Without("beneficiary_id"),
		} {
			body := testutil.Body(s.T(), reqBody, mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/adjustments", body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})
}

func (s *WalletHandlerTestSuite) TestFlaggedClaims() {
	s.Run("limit is forwarded", func() {
		flagged := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
		s.mockClaims.EXPECT().ListFlagged(gomock.Any(), 25).Return([]*queries.ClaimView{
			{ID: uuid.New(), ClaimantID: uuid.New(), Status: "claimed", ReviewFlaggedAt: &flagged},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/claims/review?limit=25", nil, "bearer-token")

		var body []resdto.FlaggedClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(flagged.Unix(), *body[0].ReviewFlaggedAt)
	})

	s.Run("bad limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/claims/review?limit=-2", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})
}

// ================================================================================
// Offers
// ================================================================================

func (s *WalletHandlerTestSuite) TestListOffers() {
	remaining := int32(3)
	s.mockOffers.EXPECT().ListActive(gomock.Any()).Return([]*queries.OfferView{
		{ID: uuid.New(), Category: "dairy", TargetDescription: "Organic Whole Milk", SavingsMinor: 150, RemainingRedemptions: &remaining},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers", nil, "bearer-token")

	var body []resdto.OfferResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 1)
	s.Equal(int32(3), *body[0].RemainingRedemptions)
}
