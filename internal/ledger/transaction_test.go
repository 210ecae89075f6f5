package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

func TestMergeTransactions_IncludesEveryEntryOnce(t *testing.T) {
	bookings := []*ledger.Booking{
		{
			ID:     "B1",
			Client: "Aman",
			Payments: []ledger.Payment{
				{ID: "p1", Date: day(2025, time.March, 10), Amount: 100, Method: ledger.MethodCash, Type: ledger.PaymentReceived},
				{ID: "p2", Date: day(2025, time.March, 12), Amount: 40, Method: ledger.MethodCash, Type: ledger.PaymentReverted, Note: "overpaid"},
			},
		},
		{
			ID:     "B2",
			Client: "Bina",
			Payments: []ledger.Payment{
				{ID: "p3", Date: day(2025, time.February, 1), Amount: 900, Method: ledger.MethodBank, Type: ledger.PaymentReceived},
			},
		},
	}

	expenses := []ledger.Expense{
		{ID: "e1", BookingID: "B1", Date: day(2025, time.March, 11), Category: "Catering", Vendor: "Acme", Amount: 70, Method: ledger.MethodUPI, Type: ledger.ExpensePaid},
		{ID: "e2", Date: day(2025, time.January, 5), Category: "Maintenance", Vendor: "FixIt", Amount: 30, Method: ledger.MethodCash, Type: ledger.ExpenseReverted, Note: "double billed"},
	}

	txs := ledger.MergeTransactions(bookings, expenses)

	// 3 payments + 2 expenses, nothing dropped or duplicated.
	require.Len(t, txs, 5)

	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Date.Before(txs[i-1].Date), "output must be sorted by date")
	}

	// Earliest first: the reverted expense, counted as income.
	assert.Equal(t, ledger.DirectionIncome, txs[0].Direction)
	assert.Contains(t, txs[0].Description, "Maintenance: FixIt")
	assert.Contains(t, txs[0].Description, "double billed")

	assert.Equal(t, "Payment from Bina", txs[1].Description)
	assert.Equal(t, ledger.DirectionIncome, txs[1].Direction)

	assert.Equal(t, "Payment from Aman", txs[2].Description)

	assert.Equal(t, ledger.DirectionExpense, txs[3].Direction)
	assert.Equal(t, "Acme", txs[3].Vendor)
	assert.Equal(t, "Catering", txs[3].Category)

	// A reverted payment is money leaving.
	assert.Equal(t, ledger.DirectionExpense, txs[4].Direction)
	assert.Equal(t, "Payment Reverted to Aman (Reason: overpaid)", txs[4].Description)
	assert.Equal(t, "B1", txs[4].BookingID)
}

func TestMergeTransactions_TieBreakKeepsConstructionOrder(t *testing.T) {
	d := day(2025, time.June, 1)

	bookings := []*ledger.Booking{
		{ID: "B1", Client: "Aman", Payments: []ledger.Payment{
			{ID: "p1", Date: d, Amount: 1, Type: ledger.PaymentReceived},
		}},
		{ID: "B2", Client: "Bina", Payments: []ledger.Payment{
			{ID: "p2", Date: d, Amount: 2, Type: ledger.PaymentReceived},
		}},
	}

	expenses := []ledger.Expense{
		{ID: "e1", Date: d, Category: "Other", Vendor: "X", Amount: 3, Type: ledger.ExpensePaid},
	}

	txs := ledger.MergeTransactions(bookings, expenses)

	require.Len(t, txs, 3)
	assert.Equal(t, int64(1), txs[0].Amount)
	assert.Equal(t, int64(2), txs[1].Amount)
	assert.Equal(t, int64(3), txs[2].Amount)
}

func TestMergeTransactions_DoesNotMutateInputs(t *testing.T) {
	bookings := []*ledger.Booking{
		{ID: "B1", Client: "Aman", Payments: []ledger.Payment{
			{ID: "p1", Date: day(2025, time.May, 2), Amount: 10, Type: ledger.PaymentReceived},
		}},
	}

	expenses := []ledger.Expense{
		{ID: "e1", Date: day(2025, time.May, 1), Category: "Other", Vendor: "X", Amount: 5, Type: ledger.ExpensePaid},
	}

	_ = ledger.MergeTransactions(bookings, expenses)

	assert.Equal(t, "p1", bookings[0].Payments[0].ID)
	assert.Equal(t, "e1", expenses[0].ID)
	assert.Equal(t, ledger.ExpensePaid, expenses[0].Type)
}

func TestMergeTransactions_Empty(t *testing.T) {
	assert.Empty(t, ledger.MergeTransactions(nil, nil))
}

func TestSeasons(t *testing.T) {
	type testCase struct {
		name     string
		bookings []*ledger.Booking
		want     []string
	}

	tests := []testCase{
		{
			name: "BaselineOnly",
			want: []string{"All", "2024-25", "2025-26", "2026-27"},
		},
		{
			name: "ExtraSeasonsSortedIn",
			bookings: []*ledger.Booking{
				{ID: "B1", Season: "2027-28"},
				{ID: "B2", Season: "2023-24"},
				{ID: "B3", Season: "2025-26"},
			},
			want: []string{"All", "2023-24", "2024-25", "2025-26", "2026-27", "2027-28"},
		},
		{
			name: "EmptySeasonIgnored",
			bookings: []*ledger.Booking{
				{ID: "B1", Season: ""},
			},
			want: []string{"All", "2024-25", "2025-26", "2026-27"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.Seasons(tt.bookings))
		})
	}
}
