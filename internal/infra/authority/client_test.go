//go:build unit

package authority_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/infra/authority"
	"redemption-ledger/internal/pkg/breaker"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/twin"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRequest(offerID uuid.UUID) redemption.Request {
	return redemption.Request{
		OfferID:      offerID,
		ClaimID:      uuid.New(),
		ClaimantID:   uuid.New(),
		ReceiptID:    uuid.New(),
		StoreName:    "Corner Market",
		PurchaseDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalMinor:   1299,
		Line:         receipt.LineItem{Description: "Oat Milk 1L", PriceMinor: 399, Quantity: 1},
	}
}

func setup(t *testing.T) (*twin.Server, *authority.Client, *breaker.Breaker, *clock.MockClock) {
	t.Helper()
	tw := twin.New(nil)
	srv := httptest.NewServer(tw.Handler())
	t.Cleanup(srv.Close)

	cfg := config.AuthorityConfig{
		BaseURL:             srv.URL,
		RequestTimeout:      2 * time.Second,
		BreakerWindow:       60 * time.Second,
		BreakerMinCalls:     10,
		BreakerFailureRatio: 0.5,
		BreakerCooldown:     30 * time.Second,
	}
	clk := clock.NewMockClock(time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC))
	br := authority.NewBreaker(cfg, clk, nil)
	return tw, authority.NewClient(cfg, br, nil), br, clk
}

func TestClient_Redeem(t *testing.T) {
	t.Run("approval carries credit and margin", func(t *testing.T) {
		tw, client, _, _ := setup(t)
		offerID := uuid.New()
		tw.SetRule(offerID.String(), twin.OfferRule{Approve: true, CreditMinor: 250, MarginMinor: 100})

		got, err := client.Redeem(context.Background(), newRequest(offerID))

		require.NoError(t, err)
		assert.Equal(t, int64(250), got.CreditMinor)
		assert.Equal(t, int64(100), got.MarginMinor)
		assert.NotEmpty(t, got.AuthorityRef)
	})

	t.Run("rejection is final and carries the reason", func(t *testing.T) {
		tw, client, br, _ := setup(t)
		offerID := uuid.New()
		tw.SetRule(offerID.String(), twin.OfferRule{Approve: false, Reason: "product not in offer"})

		_, err := client.Redeem(context.Background(), newRequest(offerID))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrGatewayRejected))
		assert.False(t, errs.Is(err, errs.ErrGatewayUnavailable))
		var rejection *redemption.Rejection
		require.True(t, errs.As(err, &rejection))
		assert.Equal(t, "product not in offer", rejection.Reason)

		successes, failures := br.Counts()
		assert.Equal(t, 1, successes)
		assert.Equal(t, 0, failures)
	})

	t.Run("repeated claim id replays the first decision", func(t *testing.T) {
		tw, client, _, _ := setup(t)
		offerID := uuid.New()
		req := newRequest(offerID)

		first, err := client.Redeem(context.Background(), req)
		require.NoError(t, err)
		tw.SetRule(offerID.String(), twin.OfferRule{Approve: false, Reason: "changed"})
		second, err := client.Redeem(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 2, tw.Calls()[req.ClaimID.String()])
	})

	t.Run("server errors are unavailable and count as failures", func(t *testing.T) {
		tw, client, br, _ := setup(t)
		tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, StatusCode: http.StatusServiceUnavailable})

		_, err := client.Redeem(context.Background(), newRequest(uuid.New()))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable))
		_, failures := br.Counts()
		assert.Equal(t, 1, failures)
	})

	t.Run("explicit decision on a client error status is a rejection", func(t *testing.T) {
		tw, client, _, _ := setup(t)
		tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, StatusCode: http.StatusUnprocessableEntity,
			Body: `{"decision":"rejected","reason":"claim already redeemed"}`})

		_, err := client.Redeem(context.Background(), newRequest(uuid.New()))

		var rejection *redemption.Rejection
		require.True(t, errs.As(err, &rejection))
		assert.Equal(t, "claim already redeemed", rejection.Reason)
		assert.True(t, errs.Is(err, errs.ErrGatewayRejected))
	})

	t.Run("client errors without a decision are unavailable", func(t *testing.T) {
		cases := []struct {
			name   string
			status int
			body   string
		}{
			{"unknown route", http.StatusNotFound, `{"error":"route not found"}`},
			{"bad request", http.StatusBadRequest, ``},
			{"conflict with a reason only", http.StatusConflict, `{"reason":"claim already redeemed"}`},
			{"unprocessable html", http.StatusUnprocessableEntity, `<html>oops</html>`},
			{"throttled", http.StatusTooManyRequests, ``},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				tw, client, br, _ := setup(t)
				tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, StatusCode: tc.status, Body: tc.body})

				_, err := client.Redeem(context.Background(), newRequest(uuid.New()))

				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable))
				assert.False(t, errs.Is(err, errs.ErrGatewayRejected))
				var rejection *redemption.Rejection
				assert.False(t, errs.As(err, &rejection))
				_, failures := br.Counts()
				assert.Equal(t, 1, failures)
			})
		}
	})

	t.Run("open breaker short circuits without calling the authority", func(t *testing.T) {
		tw, client, br, _ := setup(t)
		tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, StatusCode: http.StatusInternalServerError})

		for range 10 {
			_, _ = client.Redeem(context.Background(), newRequest(uuid.New()))
		}
		require.Equal(t, breaker.StateOpen, br.State())

		tw.ClearFault(twin.RedemptionsPath)
		req := newRequest(uuid.New())
		_, err := client.Redeem(context.Background(), req)

		require.Error(t, err)
		assert.True(t, errs.Is(err, breaker.ErrOpen))
		assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable))
		assert.Zero(t, tw.Calls()[req.ClaimID.String()])
	})

	t.Run("trial after cooldown closes the breaker", func(t *testing.T) {
		tw, client, br, clk := setup(t)
		tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, StatusCode: http.StatusBadGateway})
		for range 10 {
			_, _ = client.Redeem(context.Background(), newRequest(uuid.New()))
		}
		require.Equal(t, breaker.StateOpen, br.State())

		tw.ClearFault(twin.RedemptionsPath)
		clk.Add(30 * time.Second)
		_, err := client.Redeem(context.Background(), newRequest(uuid.New()))

		require.NoError(t, err)
		assert.Equal(t, breaker.StateClosed, br.State())
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		tw, client, _, _ := setup(t)
		tw.SetFault(twin.Fault{Path: twin.RedemptionsPath, Delay: time.Second})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.Redeem(ctx, newRequest(uuid.New()))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable))
	})
}

func TestClient_Tracing(t *testing.T) {
	traceparents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparents <- r.Header.Get("traceparent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"decision":"approved","credit_minor_units":150,"margin_minor_units":50,"authority_ref":"auth-1"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.AuthorityConfig{BaseURL: srv.URL, RequestTimeout: 2 * time.Second}
	clk := clock.NewMockClock(time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC))
	// built before the provider is installed, like the fx graph does
	client := authority.NewClient(cfg, authority.NewBreaker(cfg, clk, nil), nil)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	observability.InstallTracing(tp)

	req := newRequest(uuid.New())
	_, err := client.Redeem(context.Background(), req)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "authority.redeem", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("claim_id", req.ClaimID.String()))
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("credit_minor_units", 150))
	assert.Contains(t, <-traceparents, spans[0].SpanContext().TraceID().String())
}
