package ledger

import "time"

// Status represents the lifecycle state of a booking. Bookings are never
// physically deleted; a cancellation is a transition to StatusCancelled.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Tier represents the package tier sold with a booking.
type Tier string

const (
	TierSilver  Tier = "Silver"
	TierGold    Tier = "Gold"
	TierDiamond Tier = "Diamond"
)

// Shift represents the half of the day a booking occupies.
type Shift string

const (
	ShiftDay   Shift = "Day"
	ShiftNight Shift = "Night"
)

// Method represents how money changed hands.
type Method string

const (
	MethodCash Method = "Cash"
	MethodCard Method = "Card"
	MethodUPI  Method = "UPI"
	MethodBank Method = "Bank"
)

// PaymentType distinguishes money received from a later reversal of it.
type PaymentType string

const (
	PaymentReceived PaymentType = "Received"
	PaymentReverted PaymentType = "Reverted"
)

// Payment is one immutable ledger entry tied to exactly one booking.
// A reversal is a separate entry of type PaymentReverted; the original
// entry is never modified or removed.
type Payment struct {
	ID         string
	Date       time.Time
	Amount     int64 // whole rupees, always positive
	Method     Method
	Type       PaymentType
	Note       string
	RecordedBy string
}

// Booking represents one venue reservation together with its owned,
// append-only payment sequence.
type Booking struct {
	ID        string
	Client    string
	Status    Status
	Tier      Tier
	Season    string
	EventDate time.Time
	Contact   string
	EventType string
	Rate      int64
	Discount  int64
	Guests    int
	Shift     Shift
	Services  map[string]ServiceSelection
	Payments  []Payment

	// Expenses is the signed sum of all expense entries referencing this
	// booking. It is owned by the store's balance recomputation and is
	// never writable through a booking patch.
	Expenses int64

	Refund     int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	CreatedBy  string
}

// Received returns the net amount received for the booking:
// received payments minus reverted ones.
func (b *Booking) Received() int64 {
	var total int64

	for _, p := range b.Payments {
		if p.Type == PaymentReceived {
			total += p.Amount
		} else {
			total -= p.Amount
		}
	}

	return total
}

// clone returns a deep copy so callers can never alias store-owned state.
func (b *Booking) clone() *Booking {
	cp := *b

	cp.Payments = make([]Payment, len(b.Payments))
	copy(cp.Payments, b.Payments)

	if b.Services != nil {
		cp.Services = make(map[string]ServiceSelection, len(b.Services))
		for k, v := range b.Services {
			cp.Services[k] = v
		}
	}

	if b.UpdatedAt != nil {
		t := *b.UpdatedAt
		cp.UpdatedAt = &t
	}

	return &cp
}
