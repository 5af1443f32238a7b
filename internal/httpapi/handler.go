// Package httpapi exposes the USSD webhook and the admin read surface.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/ledger"
	"github.com/kofiadjei/ussd-remit/internal/models"
	"github.com/kofiadjei/ussd-remit/internal/rates"
	"github.com/kofiadjei/ussd-remit/internal/ussd"
)

const faultText = "An error occurred. Please try again."

type Handler struct {
	engine    *ussd.Engine
	ledger    *ledger.Ledger
	directory interfaces.Directory
	rates     *rates.Table
	logger    *slog.Logger
	limiter   *rate.Limiter
}

func New(engine *ussd.Engine, ledgerService *ledger.Ledger, directory interfaces.Directory, table *rates.Table, logger *slog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		ledger:    ledgerService,
		directory: directory,
		rates:     table,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(100), 30),
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /api/ussd", h.handleUSSD)
	mux.HandleFunc("GET /api/transactions", h.handleTransactions)
	mux.HandleFunc("GET /api/users", h.handleUsers)
	mux.HandleFunc("GET /api/exchange-rates", h.handleRates)

	return enableCORS(h.rateLimit(mux))
}

// sessionRequest is the USSD webhook payload. Gateways typically POST it
// form-encoded; the admin UI sends JSON. Both are accepted.
type sessionRequest struct {
	SessionID   string `json:"sessionId"`
	ServiceCode string `json:"serviceCode"`
	PhoneNumber string `json:"phoneNumber"`
	Text        string `json:"text"`
}

func (h *Handler) handleUSSD(w http.ResponseWriter, r *http.Request) {
	// One bad session must not take the process down for concurrent
	// sessions; a panic still terminates this session cleanly.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic handling ussd request", "panic", rec)
			writeReply(w, ussd.Reply{Continue: false, Text: faultText})
		}
	}()

	req, err := parseSessionRequest(r)
	if err != nil {
		h.logger.Warn("malformed ussd request", "error", err)
		writeReply(w, ussd.Reply{Continue: false, Text: faultText})
		return
	}

	reply := h.engine.Handle(r.Context(), req.SessionID, req.PhoneNumber, req.Text)
	writeReply(w, reply)
}

func parseSessionRequest(r *http.Request) (sessionRequest, error) {
	var req sessionRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return sessionRequest{}, err
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return sessionRequest{}, err
	}
	req.SessionID = r.PostFormValue("sessionId")
	req.ServiceCode = r.PostFormValue("serviceCode")
	req.PhoneNumber = r.PostFormValue("phoneNumber")
	req.Text = r.PostFormValue("text")
	return req, nil
}

func writeReply(w http.ResponseWriter, reply ussd.Reply) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	prefix := "END "
	if reply.Continue {
		prefix = "CON "
	}
	w.Write([]byte(prefix + reply.Text))
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.ledger.Transactions()
	if err != nil {
		h.logger.Error("listing transactions failed", "error", err)
		http.Error(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, transactions)
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.directory.Users())
}

func (h *Handler) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.rates.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
