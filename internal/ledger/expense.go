package ledger

import "time"

// ExpenseType distinguishes money paid out from a later reversal of it.
type ExpenseType string

const (
	ExpensePaid     ExpenseType = "Paid"
	ExpenseReverted ExpenseType = "Reverted"
)

// Expense is one immutable entry in the global expense ledger. BookingID is
// empty for general venue overhead. A reversal is a separate entry of type
// ExpenseReverted carrying the reason in Note.
type Expense struct {
	ID            string
	BookingID     string
	Date          time.Time
	Category      string
	Vendor        string
	Amount        int64 // whole rupees, always positive
	Method        Method
	Type          ExpenseType
	Note          string
	ManpowerCount int
	RatePerPerson int64
	RecordedBy    string
}

// Vendor is a named expense payee tied to one expense category. Vendors are
// created implicitly the first time an expense cites an unknown name.
type Vendor struct {
	ID         string
	Name       string
	CategoryID string
}

// Category classifies expenses. RequiresManpower only shapes the entry form
// (count and per-person rate); it does not affect ledger arithmetic.
type Category struct {
	ID               string
	Name             string
	RequiresManpower bool
}

// FallbackCategoryID is assigned to implicitly created vendors when the
// caller does not name a category.
const FallbackCategoryID = "other"
