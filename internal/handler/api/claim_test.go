//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"redemption-ledger/internal/domain/auth"
	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/handler/api"
	reqdto "redemption-ledger/internal/handler/dto/request"
	resdto "redemption-ledger/internal/handler/dto/response"
	"redemption-ledger/internal/handler/middleware"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"
	"redemption-ledger/tests/common/builder"
	"redemption-ledger/tests/common/httptest"
	"redemption-ledger/tests/common/testutil"
	commandsmock "redemption-ledger/tests/mock/commands"
	queriesmock "redemption-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeAuth stands in for RequireAuth: any bearer token authenticates as
// userID with role.
func fakeAuth(userID uuid.UUID, role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

type ClaimHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockClaimCommands
	mockQueries  *queriesmock.MockClaimQueries
	userID       uuid.UUID
}

func (s *ClaimHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockClaimCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockClaimQueries(s.mockCtrl)
	s.userID = uuid.New()
	h := api.NewClaimHandler(s.mockCommands, s.mockQueries)

	authMw := fakeAuth(s.userID, auth.RoleMember)
	s.router.POST("/claims", authMw, h.Create)
	s.router.GET("/claims", authMw, h.ListMine)
	s.router.POST("/claims/:id/cancel", authMw, h.Cancel)
	// mounted without auth to exercise the missing-user guard
	s.router.POST("/open/claims", h.Create)
}

func (s *ClaimHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestClaimHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ClaimHandlerTestSuite) TestCreate() {
	reqBody := reqdto.CreateClaimRequest{OfferID: uuid.New(), ListItemID: uuid.New()}
	created := builder.NewClaimBuilder().ForOffer(reqBody.OfferID).ByClaimant(s.userID).BuildDomain()

	s.Run("success: returns 201 with Location", func() {
		s.mockCommands.EXPECT().
			CreateClaim(gomock.Any(), commands.CreateClaimRequest{OfferID: reqBody.OfferID, ListItemID: reqBody.ListItemID}, s.userID).
			Return(created, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims", reqBody, "bearer-token")

		var body resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID().String(), body.ID)
		s.Equal("claimed", body.Status)
		httptest.AssertLocation(s.T(), rec, "/api/claims/"+created.ID().String())
	})

	s.Run("error: 400 on missing fields", func() {
		for _, field := range []string{"offer_id", "list_item_id"} {
			s.Run(field, func() {
				body := testutil.Body(s.T(), reqBody, testutil.Without(field))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims", body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: domain failures map to the error taxonomy", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"slot taken", errs.Mark(errs.New("slot"), errs.ErrSlotAlreadyClaimed), http.StatusConflict, "already has an open claim"},
			{"offer gone", errs.Mark(errs.New("expired"), errs.ErrOfferUnavailable), http.StatusUnprocessableEntity, "not available"},
			{"unknown offer", errs.Mark(errs.New("missing"), errs.ErrNotFound), http.StatusNotFound, "Not found"},
			{"unexpected", errs.New("db down"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateClaim(gomock.Any(), gomock.Any(), s.userID).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims", reqBody, "bearer-token")

				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})

	s.Run("error: 401 without a user", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/open/claims", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *ClaimHandlerTestSuite) TestListMine() {
	s.Run("success: passes filter and limit", func() {
		view := builder.NewClaimBuilder().ByClaimant(s.userID).BuildView()
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID, "claimed", 5).Return([]*queries.ClaimView{view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/claims?status=claimed&limit=5", nil, "bearer-token")

		var body []resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(view.ID.String(), body[0].ID)
		s.Equal("Organic Whole Milk", body[0].TargetDescription)
	})

	s.Run("error: 400 on bad query", func() {
		for _, q := range []string{"?status=pending", "?limit=-1", "?limit=201", "?limit=ten"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/claims"+q, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/claims", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ClaimHandlerTestSuite) TestCancel() {
	cancelled := builder.NewClaimBuilder().ByClaimant(s.userID).WithStatus(claim.StatusCancelled).BuildDomain()

	s.Run("success", func() {
		s.mockCommands.EXPECT().CancelClaim(gomock.Any(), cancelled.ID(), s.userID).Return(cancelled, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims/"+cancelled.ID().String()+"/cancel", nil, "bearer-token")

		var body resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
		s.NotNil(body.ResolvedAt)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims/not-a-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: already redeemed", func() {
		s.mockCommands.EXPECT().CancelClaim(gomock.Any(), cancelled.ID(), s.userID).
			Return(nil, errs.Mark(errs.New("redeemed"), errs.ErrInvalidTransition))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/claims/"+cancelled.ID().String()+"/cancel", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "can no longer change")
	})
}
