package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"redemption-ledger/internal/domain/receipt"
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
	dependency   = "ocr"
	extractPath  = "/v1/extractions"
	maxBodyBytes = 4 << 20
)

var (
	// ErrUnreadableImage means the service looked at the image and could not
	// extract a receipt from it. Retrying will not help.
	ErrUnreadableImage = receipt.ErrUnreadable
	// ErrTransport covers every failure where the image was never judged.
	ErrTransport = errs.New("ocr service unavailable")
)

type extractionResponse struct {
	StoreName       string         `json:"store_name"`
	PurchaseDate    string         `json:"purchase_date"`
	LineItems       []lineResponse `json:"line_items"`
	TotalMinorUnits int64          `json:"total_minor_units"`
}

type lineResponse struct {
	Description     string `json:"description"`
	PriceMinorUnits int64  `json:"price_minor_units"`
	Quantity        int32  `json:"quantity"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *breaker.Breaker
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func NewClient(cfg config.OCRConfig, clk clock.Clock, metrics *observability.Metrics) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	settings := breaker.DefaultSettings()
	settings.OnStateChange = func(name string, from, to breaker.State) {
		metrics.BreakerTransition(name, from.String(), to.String(), int(to))
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: breaker.New(dependency, settings, clk),
		metrics: metrics,
		tracer:  otel.Tracer("redemption/ocr"),
	}
}

// Extract sends the image bytes and returns the structured receipt. Errors
// are marked ErrUnreadableImage or ErrTransport.
func (c *Client) Extract(ctx context.Context, image []byte) (receipt.Extraction, error) {
	ctx, span := c.tracer.Start(ctx, "ocr.extract", trace.WithAttributes(
		attribute.Int("image_bytes", len(image)),
	))
	defer span.End()

	done, err := c.breaker.Allow()
	if err != nil {
		c.metrics.ObserveGateway(dependency, "short_circuit", 0)
		return receipt.Extraction{}, errs.Mark(errs.Wrap(err, "ocr"), ErrTransport)
	}

	start := time.Now()
	ex, err := c.extract(ctx, image)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		done(true)
		c.metrics.ObserveGateway(dependency, "ok", elapsed)
		return ex, nil
	case errs.Is(err, ErrUnreadableImage):
		done(true)
		c.metrics.ObserveGateway(dependency, "unreadable", elapsed)
		return receipt.Extraction{}, err
	default:
		done(false)
		c.metrics.ObserveGateway(dependency, "failure", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return receipt.Extraction{}, errs.Mark(err, ErrTransport)
	}
}

func (c *Client) extract(ctx context.Context, image []byte) (receipt.Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+extractPath, bytes.NewReader(image))
	if err != nil {
		return receipt.Extraction{}, errs.Wrap(err, "build ocr request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	observability.InjectTraceContext(ctx, req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return receipt.Extraction{}, errs.Wrap(err, "call ocr")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return receipt.Extraction{}, errs.Wrap(err, "read ocr response")
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return receipt.Extraction{}, errs.Mark(errs.New(strings.TrimSpace(string(raw))), ErrUnreadableImage)
	case resp.StatusCode != http.StatusOK:
		return receipt.Extraction{}, errs.New(fmt.Sprintf("ocr returned status %d", resp.StatusCode))
	}

	var out extractionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return receipt.Extraction{}, errs.Wrap(err, "decode ocr response")
	}
	return toExtraction(out)
}

func toExtraction(out extractionResponse) (receipt.Extraction, error) {
	ex := receipt.Extraction{
		StoreName:  out.StoreName,
		TotalMinor: out.TotalMinorUnits,
		LineItems:  make([]receipt.LineItem, 0, len(out.LineItems)),
	}
	if out.PurchaseDate != "" {
		d, err := parseDate(out.PurchaseDate)
		if err != nil {
			// the service answered, but with nothing usable as a date
			return receipt.Extraction{}, errs.Mark(err, ErrUnreadableImage)
		}
		ex.PurchaseDate = d
	}
	for _, li := range out.LineItems {
		ex.LineItems = append(ex.LineItems, receipt.LineItem{
			Description: li.Description,
			PriceMinor:  li.PriceMinorUnits,
			Quantity:    li.Quantity,
		})
	}
	return ex, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.New(fmt.Sprintf("unparseable purchase date %q", s))
}
