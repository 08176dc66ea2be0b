package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/pkg/breaker"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	dependency     = "authority"
	redeemPath     = "/v1/redemptions"
	maxBodyBytes   = 1 << 20
	decisionOK     = "approved"
	decisionRefuse = "rejected"
)

type redeemRequest struct {
	OfferID    string          `json:"offer_id"`
	ClaimID    string          `json:"claim_id"`
	ClaimantID string          `json:"claimant_id"`
	Receipt    receiptSnapshot `json:"receipt_snapshot"`
}

type receiptSnapshot struct {
	ReceiptID       string       `json:"receipt_id"`
	StoreName       string       `json:"store_name"`
	PurchaseDate    string       `json:"purchase_date"`
	TotalMinorUnits int64        `json:"total_minor_units"`
	LineItem        lineSnapshot `json:"line_item"`
}

type lineSnapshot struct {
	Description     string `json:"description"`
	PriceMinorUnits int64  `json:"price_minor_units"`
	Quantity        int32  `json:"quantity"`
}

type redeemResponse struct {
	Decision         string `json:"decision"`
	CreditMinorUnits int64  `json:"credit_minor_units"`
	MarginMinorUnits int64  `json:"margin_minor_units"`
	AuthorityRef     string `json:"authority_ref"`
	Reason           string `json:"reason"`
}

// Client calls the offer authority through a circuit breaker. Rejections are
// answers from a healthy authority and do not count against the breaker.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *breaker.Breaker
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func NewClient(cfg config.AuthorityConfig, br *breaker.Breaker, metrics *observability.Metrics) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		breaker: br,
		metrics: metrics,
		tracer:  otel.Tracer("redemption/authority"),
	}
}

// NewBreaker builds the process-wide breaker guarding the authority and
// reports its transitions as metrics.
func NewBreaker(cfg config.AuthorityConfig, clk clock.Clock, metrics *observability.Metrics) *breaker.Breaker {
	settings := breaker.DefaultSettings()
	if cfg.BreakerWindow > 0 {
		settings.Window = cfg.BreakerWindow
	}
	if cfg.BreakerMinCalls > 0 {
		settings.MinCalls = cfg.BreakerMinCalls
	}
	if cfg.BreakerFailureRatio > 0 {
		settings.FailureRatio = cfg.BreakerFailureRatio
	}
	if cfg.BreakerCooldown > 0 {
		settings.Cooldown = cfg.BreakerCooldown
	}
	settings.OnStateChange = StateLogger(metrics)
	return breaker.New(dependency, settings, clk)
}

// StateLogger returns a breaker hook that logs and counts transitions.
func StateLogger(metrics *observability.Metrics) func(name string, from, to breaker.State) {
	return func(name string, from, to breaker.State) {
		slog.Warn("circuit breaker transition",
			"dependency", name,
			"from", from.String(),
			"to", to.String())
		metrics.BreakerTransition(name, from.String(), to.String(), int(to))
	}
}

// Redeem asks the authority to honour one claim. It returns the approval,
// an error marked errs.ErrGatewayRejected wrapping *redemption.Rejection, or
// an error marked errs.ErrGatewayUnavailable for anything worth retrying.
func (c *Client) Redeem(ctx context.Context, req redemption.Request) (redemption.Approval, error) {
	ctx, span := c.tracer.Start(ctx, "authority.redeem", trace.WithAttributes(
		attribute.String("claim_id", req.ClaimID.String()),
		attribute.String("offer_id", req.OfferID.String()),
	))
	defer span.End()

	done, err := c.breaker.Allow()
	if err != nil {
		c.metrics.ObserveGateway(dependency, "short_circuit", 0)
		span.SetStatus(codes.Error, "breaker open")
		return redemption.Approval{}, errs.Mark(errs.Wrap(err, "authority"), errs.ErrGatewayUnavailable)
	}

	start := time.Now()
	approval, err := c.post(ctx, req)
	elapsed := time.Since(start)

	var rejection *redemption.Rejection
	switch {
	case err == nil:
		done(true)
		c.metrics.ObserveGateway(dependency, "approved", elapsed)
		span.SetAttributes(attribute.Int64("credit_minor_units", approval.CreditMinor))
		return approval, nil
	case errs.As(err, &rejection):
		done(true)
		c.metrics.ObserveGateway(dependency, "rejected", elapsed)
		span.SetAttributes(attribute.String("rejection_reason", rejection.Reason))
		return redemption.Approval{}, errs.Mark(err, errs.ErrGatewayRejected)
	default:
		done(false)
		c.metrics.ObserveGateway(dependency, "failure", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return redemption.Approval{}, errs.Mark(err, errs.ErrGatewayUnavailable)
	}
}

func (c *Client) post(ctx context.Context, req redemption.Request) (redemption.Approval, error) {
	body, err := json.Marshal(toWire(req))
	if err != nil {
		return redemption.Approval{}, errs.Wrap(err, "encode redemption request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+redeemPath, bytes.NewReader(body))
	if err != nil {
		return redemption.Approval{}, errs.Wrap(err, "build redemption request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.ClaimID.String())
	observability.InjectTraceContext(ctx, httpReq.Header)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return redemption.Approval{}, errs.Wrap(err, "call authority")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return redemption.Approval{}, errs.Wrap(err, "read authority response")
	}

	var out redeemResponse
	var decodeErr error
	if len(raw) > 0 {
		decodeErr = json.Unmarshal(raw, &out)
	}

	// Only an explicit decision rejects a claim. Any other non-2xx, however
	// it is shaped, says nothing about the claim and is retried.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && out.Decision == decisionRefuse && resp.StatusCode < 500 {
			return redemption.Approval{}, &redemption.Rejection{Reason: rejectionReason(out.Reason, resp.StatusCode)}
		}
		return redemption.Approval{}, errs.New(fmt.Sprintf("authority returned status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return redemption.Approval{}, errs.Wrap(decodeErr, "decode authority response")
	}

	switch out.Decision {
	case decisionOK:
		if out.CreditMinorUnits < 0 || out.MarginMinorUnits < 0 {
			return redemption.Approval{}, errs.New("authority returned negative amounts")
		}
		return redemption.Approval{
			CreditMinor:  out.CreditMinorUnits,
			MarginMinor:  out.MarginMinorUnits,
			AuthorityRef: out.AuthorityRef,
		}, nil
	case decisionRefuse:
		return redemption.Approval{}, &redemption.Rejection{Reason: rejectionReason(out.Reason, resp.StatusCode)}
	default:
		return redemption.Approval{}, errs.New(fmt.Sprintf("authority returned unknown decision %q", out.Decision))
	}
}

func rejectionReason(reason string, status int) string {
	if reason != "" {
		return reason
	}
	return fmt.Sprintf("authority declined with status %d", status)
}

func toWire(req redemption.Request) redeemRequest {
	date := ""
	if !req.PurchaseDate.IsZero() {
		date = req.PurchaseDate.UTC().Format(time.DateOnly)
	}
	return redeemRequest{
		OfferID:    req.OfferID.String(),
		ClaimID:    req.ClaimID.String(),
		ClaimantID: req.ClaimantID.String(),
		Receipt: receiptSnapshot{
			ReceiptID:       req.ReceiptID.String(),
			StoreName:       req.StoreName,
			PurchaseDate:    date,
			TotalMinorUnits: req.TotalMinor,
			LineItem: lineSnapshot{
				Description:     req.Line.Description,
				PriceMinorUnits: req.Line.PriceMinor,
				Quantity:        req.Line.Quantity,
			},
		},
	}
}
