package ledger

import (
	"fmt"
	"sort"
	"time"
)

// Direction normalizes every ledger entry into money in or money out.
type Direction string

const (
	DirectionIncome  Direction = "Income"
	DirectionExpense Direction = "Expense"
)

// Transaction is a read-only reporting row derived from a payment or
// expense entry. It is never stored; it is recomputed from the ledger on
// every read.
type Transaction struct {
	Date        time.Time
	Description string
	BookingID   string
	Direction   Direction
	Amount      int64
	Method      Method
	Vendor      string
	Category    string
}

// MergeTransactions projects every payment across all bookings and every
// expense into a single day-book view, sorted ascending by date. It is a
// pure function: inputs are not mutated and no entry is dropped or
// duplicated. Ties keep construction order (payments in booking order,
// then expenses in ledger order).
//
// Direction follows the entry's effect on cash: a received payment is
// income, reverting it is an outflow; a paid expense is an outflow,
// reverting it brings money back in.
func MergeTransactions(bookings []*Booking, expenses []Expense) []Transaction {
	txs := make([]Transaction, 0, countEntries(bookings)+len(expenses))

	for _, b := range bookings {
		for _, p := range b.Payments {
			tx := Transaction{
				Date:      p.Date,
				BookingID: b.ID,
				Amount:    p.Amount,
				Method:    p.Method,
			}

			if p.Type == PaymentReceived {
				tx.Direction = DirectionIncome
				tx.Description = fmt.Sprintf("Payment from %s", b.Client)
			} else {
				tx.Direction = DirectionExpense
				tx.Description = fmt.Sprintf("Payment Reverted to %s", b.Client)

				if p.Note != "" {
					tx.Description += fmt.Sprintf(" (Reason: %s)", p.Note)
				}
			}

			txs = append(txs, tx)
		}
	}

	for _, e := range expenses {
		tx := Transaction{
			Date:        e.Date,
			Description: fmt.Sprintf("%s: %s", e.Category, e.Vendor),
			BookingID:   e.BookingID,
			Amount:      e.Amount,
			Method:      e.Method,
			Vendor:      e.Vendor,
			Category:    e.Category,
		}

		if e.Type == ExpensePaid {
			tx.Direction = DirectionExpense
		} else {
			tx.Direction = DirectionIncome
			if e.Note != "" {
				tx.Description += fmt.Sprintf(" (Revert Reason: %s)", e.Note)
			}
		}

		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})

	return txs
}

func countEntries(bookings []*Booking) int {
	n := 0
	for _, b := range bookings {
		n += len(b.Payments)
	}

	return n
}

// baselineSeasons are always offered as filter values even before any
// booking uses them.
var baselineSeasons = []string{"2024-25", "2025-26", "2026-27"}

// SeasonAll is the synthetic pseudo-season used as a reporting filter.
const SeasonAll = "All"

// Seasons returns the distinct seasons across the given bookings plus the
// baseline set, sorted ascending, with SeasonAll prepended.
func Seasons(bookings []*Booking) []string {
	set := make(map[string]struct{}, len(bookings)+len(baselineSeasons))

	for _, b := range bookings {
		if b.Season != "" {
			set[b.Season] = struct{}{}
		}
	}

	for _, s := range baselineSeasons {
		set[s] = struct{}{}
	}

	seasons := make([]string, 0, len(set)+1)
	for s := range set {
		seasons = append(seasons, s)
	}

	sort.Strings(seasons)

	return append([]string{SeasonAll}, seasons...)
}
