// Package accounts serves the derived reporting views: the merged day
// book of every payment and expense entry, and the season filter values.
package accounts

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/heritage/internal/http/response"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type Handler struct {
	store *ledger.Store
}

func New(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.transactions)
	r.Get("/seasons", h.seasons)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var startDate, endDate time.Time

	if s := query.Get("start_date"); s != "" {
		parsed, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		startDate = parsed
	}

	if s := query.Get("end_date"); s != "" {
		parsed, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// Inclusive upper bound.
		endDate = parsed.AddDate(0, 0, 1)
	}

	bookingID := query.Get("booking_id")

	var totalIn, totalOut int64

	resp := make([]transactionResponse, 0)

	for _, tx := range h.store.Transactions() {
		if !startDate.IsZero() && tx.Date.Before(startDate) {
			continue
		}

		if !endDate.IsZero() && !tx.Date.Before(endDate) {
			continue
		}

		if bookingID != "" && tx.BookingID != bookingID {
			continue
		}

		if tx.Direction == ledger.DirectionIncome {
			totalIn += tx.Amount
		} else {
			totalOut += tx.Amount
		}

		resp = append(resp, toTransactionResponse(tx))
	}

	response.JSON(w, http.StatusOK, transactionsResponse{
		Transactions: resp,
		TotalIncome:  totalIn,
		TotalExpense: totalOut,
		Net:          totalIn - totalOut,
	})
}

func (h *Handler) seasons(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.store.Seasons())
}

type transactionsResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	TotalIncome  int64                 `json:"total_income"`
	TotalExpense int64                 `json:"total_expense"`
	Net          int64                 `json:"net"`
}

type transactionResponse struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	BookingID   string `json:"booking_id,omitempty"`
	Direction   string `json:"direction"`
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Vendor      string `json:"vendor,omitempty"`
	Category    string `json:"category,omitempty"`
}

func toTransactionResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		Date:        tx.Date.Format(time.DateOnly),
		Description: tx.Description,
		BookingID:   tx.BookingID,
		Direction:   string(tx.Direction),
		Amount:      tx.Amount,
		Method:      string(tx.Method),
		Vendor:      tx.Vendor,
		Category:    tx.Category,
	}
}
