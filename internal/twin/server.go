// Package twin fakes the engine's external collaborators, the redemption
// authority and the OCR service, for local runs and tests.
package twin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	RedemptionsPath = "/v1/redemptions"
	ExtractionsPath = "/v1/extractions"
)

// UnreadableImage is the image content the fake OCR refuses to read.
var UnreadableImage = []byte("UNREADABLE")

type Server struct {
	state  *state
	faults *faultRegistry
	logger *slog.Logger
}

func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{state: newState(), faults: newFaultRegistry(), logger: logger}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(s.faultInjection)
		r.Post(RedemptionsPath, s.handleRedeem)
		r.Post(ExtractionsPath, s.handleExtract)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reset", s.handleReset)
		r.Put("/offers/default", s.handleSetRule)
		r.Put("/offers/{offerID}", s.handleSetRule)
		r.Post("/faults", s.handleSetFault)
		r.Delete("/faults", s.handleRemoveFault)
		r.Get("/calls", s.handleCalls)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// SetRule and the other exported helpers let in-process tests drive the
// twin without going through the admin API.
func (s *Server) SetRule(offerID string, rule OfferRule) { s.state.setRule(offerID, rule) }
func (s *Server) SetFault(f Fault)                       { s.faults.set(f) }
func (s *Server) ClearFault(path string)                 { s.faults.remove(path) }
func (s *Server) Calls() map[string]int                  { return s.state.callCounts() }

func (s *Server) Reset() {
	s.state.reset()
	s.faults.reset()
}

func (s *Server) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.faults.check(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.Delay > 0 {
			select {
			case <-time.After(f.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if f.StatusCode == 0 {
			next.ServeHTTP(w, r)
			return
		}
		body := f.Body
		if body == "" {
			body = fmt.Sprintf(`{"error":"injected fault","code":%d}`, f.StatusCode)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.StatusCode)
		_, _ = io.WriteString(w, body)
	})
}

type redeemRequest struct {
	OfferID    string `json:"offer_id"`
	ClaimID    string `json:"claim_id"`
	ClaimantID string `json:"claimant_id"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"decision": "rejected", "reason": "malformed request"})
		return
	}
	key := r.Header.Get("Idempotency-Key")
	if key == "" {
		key = req.ClaimID
	}

	rule := s.state.rule(req.OfferID)
	var payload map[string]any
	if rule.Approve {
		payload = map[string]any{
			"decision":           "approved",
			"credit_minor_units": rule.CreditMinor,
			"margin_minor_units": rule.MarginMinor,
			"authority_ref":      "twin-" + key,
		}
	} else {
		reason := rule.Reason
		if reason == "" {
			reason = "offer not eligible"
		}
		payload = map[string]any{"decision": "rejected", "reason": reason}
	}
	body, _ := json.Marshal(payload)

	d := s.state.remember(key, decision{status: http.StatusOK, body: body})
	s.logger.Debug("twin redemption", "key", key, "offer_id", req.OfferID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.status)
	_, _ = w.Write(d.body)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image"})
		return
	}
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, UnreadableImage) || !json.Valid(raw) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no receipt found in image"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleSetRule(w http.ResponseWriter, r *http.Request) {
	var rule OfferRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rule: " + err.Error()})
		return
	}
	s.state.setRule(chi.URLParam(r, "offerID"), rule)
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleSetFault(w http.ResponseWriter, r *http.Request) {
	var f Fault
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil || f.Path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fault needs a path"})
		return
	}
	s.faults.set(f)
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleRemoveFault(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if !s.faults.remove(path) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no fault for " + path})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleCalls(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.callCounts())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
