package accounts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/heritage/internal/http/accounts"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	date := func(day int) time.Time {
		return time.Date(2025, time.November, day, 0, 0, 0, 0, time.UTC)
	}

	state := &ledger.State{
		Bookings: []*ledger.Booking{
			{
				ID:     "HG/2025/010",
				Client: "Sharma Family",
				Season: "2025-26",
				Payments: []ledger.Payment{
					{ID: "p1", Date: date(1), Amount: 50000, Method: ledger.MethodUPI, Type: ledger.PaymentReceived},
					{ID: "p2", Date: date(3), Amount: 10000, Method: ledger.MethodUPI, Type: ledger.PaymentReverted},
				},
			},
		},
		Expenses: []ledger.Expense{
			{ID: "e1", BookingID: "HG/2025/010", Date: date(2), Category: "catering", Vendor: "Gupta Caterers", Amount: 15000, Method: ledger.MethodCash, Type: ledger.ExpensePaid},
			{ID: "e2", Date: date(5), Category: "maintenance", Vendor: "City Electric", Amount: 4000, Method: ledger.MethodBank, Type: ledger.ExpensePaid},
		},
	}

	router := chi.NewRouter()
	accounts.New(ledger.NewStore(state, ledger.Options{})).Routes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

type transactionsBody struct {
	Transactions []struct {
		Date        string `json:"date"`
		Description string `json:"description"`
		BookingID   string `json:"booking_id"`
		Direction   string `json:"direction"`
		Amount      int64  `json:"amount"`
	} `json:"transactions"`
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Net          int64 `json:"net"`
}

func TestTransactions_MergesAndTotals(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/transactions")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body transactionsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Transactions, 4)

	// Sorted ascending by date.
	assert.Equal(t, "2025-11-01", body.Transactions[0].Date)
	assert.Equal(t, "2025-11-05", body.Transactions[3].Date)

	assert.Equal(t, int64(50000), body.TotalIncome)
	assert.Equal(t, int64(29000), body.TotalExpense)
	assert.Equal(t, int64(21000), body.Net)
}

func TestTransactions_DateRangeIsInclusive(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/transactions?start_date=2025-11-02&end_date=2025-11-03")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body transactionsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "2025-11-02", body.Transactions[0].Date)
	assert.Equal(t, "2025-11-03", body.Transactions[1].Date)
}

func TestTransactions_FilterByBooking(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/transactions?booking_id=HG/2025/010")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body transactionsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Transactions, 3)

	for _, tx := range body.Transactions {
		assert.Equal(t, "HG/2025/010", tx.BookingID)
	}
}

func TestTransactions_RejectsBadDate(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/transactions?start_date=01-11-2025")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSeasons(t *testing.T) {
	server := newServer(t)

	resp, err := http.Get(server.URL + "/seasons")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var seasons []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seasons))

	assert.Equal(t, []string{"All", "2024-25", "2025-26", "2026-27"}, seasons)
}
