package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sinkTimeout bounds every best-effort call to a mirror, audit, or
// snapshot sink. A slow sink can never block a mutation.
const sinkTimeout = 5 * time.Second

// Options carries the external collaborators a store mirrors into. Any of
// them may be nil, which disables that sink.
type Options struct {
	Mirror    Mirror
	Audit     AuditLogger
	Snapshots Snapshotter
	Notifier  Notifier
}

// Store is the single owner of the booking and expense collections. All
// mutation funnels through its methods, which is what keeps the ledger
// append-only and the derived booking balances consistent: no other code
// path can write the underlying slices, and Booking.Expenses is only ever
// written by the balance recomputation that runs inside the write lock.
//
// Mutations are synchronous against in-memory state. Each one is
// additionally mirrored to the configured sinks on a separate goroutine;
// sink failures are logged and never undo the in-memory change.
type Store struct {
	mu         sync.RWMutex
	bookings   []*Booking
	expenses   []Expense
	vendors    []Vendor
	categories []Category
	config     Configuration

	opts Options
}

// NewStore builds a store over the given state. Balances are recomputed up
// front so the first read already reflects the expense ledger.
func NewStore(state *State, opts Options) *Store {
	s := &Store{
		bookings:   state.Bookings,
		expenses:   state.Expenses,
		vendors:    state.Vendors,
		categories: state.Categories,
		config:     state.Config,
		opts:       opts,
	}

	s.recalcBookingExpenses()

	return s
}

// --- Bookings ---

// AddBooking appends a new booking with an empty payment sequence. The
// caller-supplied id must be unique.
func (s *Store) AddBooking(ctx context.Context, b *Booking) (*Booking, error) {
	if b.ID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidEntry)
	}

	if b.Client == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidEntry)
	}

	s.mu.Lock()

	if s.findBooking(b.ID) != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", b.ID, ErrDuplicateBooking)
	}

	nb := b.clone()
	nb.Payments = []Payment{}
	nb.CreatedAt = time.Now()
	nb.UpdatedAt = nil

	s.bookings = append(s.bookings, nb)

	// An expense recorded against this id before the booking existed must
	// show up in its balance immediately.
	s.recalcBookingExpenses()

	out := nb.clone()
	snapshot := s.cloneBookings()

	s.mu.Unlock()

	s.mirrorCreateBooking(out.clone())
	s.audit(AuditEntry{
		Action:      AuditCreate,
		Collection:  "bookings",
		TargetID:    out.ID,
		PerformedBy: out.CreatedBy,
		Details:     fmt.Sprintf("Created booking for %s", out.Client),
	})
	s.saveSnapshot(SnapshotBookings, snapshot)

	return out, nil
}

// BookingPatch replaces mutable booking fields. The payment sequence and
// the derived expense balance are not patchable by construction.
type BookingPatch struct {
	Client    *string
	Status    *Status
	Tier      *Tier
	Season    *string
	EventDate *time.Time
	Contact   *string
	EventType *string
	Rate      *int64
	Discount  *int64
	Guests    *int
	Shift     *Shift
	Services  map[string]ServiceSelection
	Refund    *int64
}

// UpdateBooking applies the patch to an existing booking.
func (s *Store) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (*Booking, error) {
	s.mu.Lock()

	b := s.findBooking(id)
	if b == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", id, ErrBookingNotFound)
	}

	if patch.Client != nil {
		b.Client = *patch.Client
	}

	if patch.Status != nil {
		b.Status = *patch.Status
	}

	if patch.Tier != nil {
		b.Tier = *patch.Tier
	}

	if patch.Season != nil {
		b.Season = *patch.Season
	}

	if patch.EventDate != nil {
		b.EventDate = *patch.EventDate
	}

	if patch.Contact != nil {
		b.Contact = *patch.Contact
	}

	if patch.EventType != nil {
		b.EventType = *patch.EventType
	}

	if patch.Rate != nil {
		b.Rate = *patch.Rate
	}

	if patch.Discount != nil {
		b.Discount = *patch.Discount
	}

	if patch.Guests != nil {
		b.Guests = *patch.Guests
	}

	if patch.Shift != nil {
		b.Shift = *patch.Shift
	}

	if patch.Services != nil {
		b.Services = patch.Services
	}

	if patch.Refund != nil {
		b.Refund = *patch.Refund
	}

	now := time.Now()
	b.UpdatedAt = &now

	out := b.clone()
	snapshot := s.cloneBookings()

	s.mu.Unlock()

	s.mirrorUpdateBooking(out.clone())
	s.audit(AuditEntry{
		Action:     AuditUpdate,
		Collection: "bookings",
		TargetID:   out.ID,
		Details:    fmt.Sprintf("Updated booking for %s", out.Client),
	})
	s.saveSnapshot(SnapshotBookings, snapshot)

	return out, nil
}

// --- Payments ---

// PaymentParams describes a payment being recorded.
type PaymentParams struct {
	Date       time.Time
	Amount     int64
	Method     Method
	Note       string
	RecordedBy string
}

// AddPayment appends a Received entry to the booking's payment sequence.
func (s *Store) AddPayment(ctx context.Context, bookingID string, params PaymentParams) (*Payment, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidEntry)
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	p := Payment{
		ID:         uuid.NewString(),
		Date:       date,
		Amount:     params.Amount,
		Method:     params.Method,
		Type:       PaymentReceived,
		Note:       params.Note,
		RecordedBy: params.RecordedBy,
	}

	b, err := s.appendPayment(bookingID, p)
	if err != nil {
		return nil, err
	}

	s.notify(fmt.Sprintf("Payment of ₹%d added successfully!", p.Amount), SeveritySuccess)
	s.audit(AuditEntry{
		Action:      AuditUpdate,
		Collection:  "bookings",
		TargetID:    bookingID,
		PerformedBy: params.RecordedBy,
		Details:     fmt.Sprintf("Recorded payment of ₹%d for %s", p.Amount, b.Client),
	})

	return &p, nil
}

// RevertParams describes a reversal of an existing entry.
type RevertParams struct {
	Date       time.Time
	Reason     string
	RecordedBy string
}

// RevertPayment appends a new Reverted entry offsetting the identified
// payment. The amount is taken from the original entry, never from the
// caller, so a reversal can only ever cancel what was actually received.
// Reversal entries themselves cannot be reverted.
func (s *Store) RevertPayment(ctx context.Context, bookingID, paymentID string, params RevertParams) (*Payment, error) {
	s.mu.RLock()

	b := s.findBooking(bookingID)
	if b == nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%q: %w", bookingID, ErrBookingNotFound)
	}

	var original *Payment

	for i := range b.Payments {
		if b.Payments[i].ID == paymentID {
			original = &b.Payments[i]
			break
		}
	}

	if original == nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%q: %w", paymentID, ErrPaymentNotFound)
	}

	if original.Type == PaymentReverted {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%q: %w", paymentID, ErrAlreadyReverted)
	}

	amount := original.Amount
	method := original.Method

	s.mu.RUnlock()

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	p := Payment{
		ID:         uuid.NewString(),
		Date:       date,
		Amount:     amount,
		Method:     method,
		Type:       PaymentReverted,
		Note:       params.Reason,
		RecordedBy: params.RecordedBy,
	}

	if _, err := s.appendPayment(bookingID, p); err != nil {
		return nil, err
	}

	s.notify(fmt.Sprintf("Payment of ₹%d reverted successfully.", p.Amount), SeverityWarning)
	s.audit(AuditEntry{
		Action:      AuditUpdate,
		Collection:  "bookings",
		TargetID:    bookingID,
		PerformedBy: params.RecordedBy,
		Details:     fmt.Sprintf("Reverted payment %s (₹%d)", paymentID, p.Amount),
	})

	return &p, nil
}

func (s *Store) appendPayment(bookingID string, p Payment) (*Booking, error) {
	s.mu.Lock()

	b := s.findBooking(bookingID)
	if b == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", bookingID, ErrBookingNotFound)
	}

	b.Payments = append(b.Payments, p)

	out := b.clone()
	snapshot := s.cloneBookings()

	s.mu.Unlock()

	s.mirrorUpdateBooking(out.clone())
	s.saveSnapshot(SnapshotBookings, snapshot)

	return out, nil
}

// --- Expenses ---

// ExpenseParams describes an expense being recorded against the global
// ledger. BookingID is empty for general venue overhead.
type ExpenseParams struct {
	BookingID     string
	Date          time.Time
	Category      string
	Vendor        string
	Amount        int64
	Method        Method
	Note          string
	ManpowerCount int
	RatePerPerson int64
	RecordedBy    string

	// FallbackCategoryID is assigned when the vendor is unknown and has to
	// be created. Empty means the "Other" category.
	FallbackCategoryID string
}

// AddExpense appends a Paid entry to the expense ledger and recomputes the
// affected booking balances. An unknown vendor name (case-insensitive) is
// registered as a new vendor as a side effect.
func (s *Store) AddExpense(ctx context.Context, params ExpenseParams) (*Expense, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: expense amount must be positive", ErrInvalidEntry)
	}

	if strings.TrimSpace(params.Vendor) == "" {
		return nil, fmt.Errorf("%w: vendor name is required", ErrInvalidEntry)
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	e := Expense{
		ID:            uuid.NewString(),
		BookingID:     params.BookingID,
		Date:          date,
		Category:      params.Category,
		Vendor:        params.Vendor,
		Amount:        params.Amount,
		Method:        params.Method,
		Type:          ExpensePaid,
		Note:          params.Note,
		ManpowerCount: params.ManpowerCount,
		RatePerPerson: params.RatePerPerson,
		RecordedBy:    params.RecordedBy,
	}

	s.mu.Lock()

	s.expenses = append(s.expenses, e)

	newVendor := s.registerVendor(params.Vendor, params.FallbackCategoryID)
	s.recalcBookingExpenses()

	expSnapshot := append([]Expense(nil), s.expenses...)
	vendorSnapshot := append([]Vendor(nil), s.vendors...)

	s.mu.Unlock()

	if newVendor != nil {
		s.notify(fmt.Sprintf("New vendor %q added to category.", newVendor.Name), SeverityInfo)
		s.saveSnapshot(SnapshotVendors, vendorSnapshot)
	}

	s.notify("Expense added successfully!", SeveritySuccess)

	s.mirrorAddExpense(&e)
	s.audit(AuditEntry{
		Action:      AuditCreate,
		Collection:  "expenses",
		TargetID:    e.ID,
		PerformedBy: params.RecordedBy,
		Details:     fmt.Sprintf("Recorded expense of ₹%d to %s", e.Amount, e.Vendor),
	})
	s.saveSnapshot(SnapshotExpenses, expSnapshot)

	return &e, nil
}

// RevertExpense appends a new Reverted entry offsetting the identified
// expense. As with payments, the amount comes from the original entry.
func (s *Store) RevertExpense(ctx context.Context, expenseID string, params RevertParams) (*Expense, error) {
	s.mu.Lock()

	original := s.findExpense(expenseID)
	if original == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", expenseID, ErrExpenseNotFound)
	}

	if original.Type == ExpenseReverted {
		s.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", expenseID, ErrAlreadyReverted)
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	e := Expense{
		ID:         uuid.NewString(),
		BookingID:  original.BookingID,
		Date:       date,
		Category:   original.Category,
		Vendor:     original.Vendor,
		Amount:     original.Amount,
		Method:     original.Method,
		Type:       ExpenseReverted,
		Note:       params.Reason,
		RecordedBy: params.RecordedBy,
	}

	s.expenses = append(s.expenses, e)
	s.recalcBookingExpenses()

	snapshot := append([]Expense(nil), s.expenses...)

	s.mu.Unlock()

	s.notify(fmt.Sprintf("Expense of ₹%d reverted successfully.", e.Amount), SeverityWarning)

	s.mirrorAddExpense(&e)
	s.audit(AuditEntry{
		Action:      AuditCreate,
		Collection:  "expenses",
		TargetID:    e.ID,
		PerformedBy: params.RecordedBy,
		Details:     fmt.Sprintf("Reverted expense %s (₹%d)", expenseID, e.Amount),
	})
	s.saveSnapshot(SnapshotExpenses, snapshot)

	return &e, nil
}

// registerVendor finds a vendor by case-insensitive name or creates one
// bound to the fallback category. Returns the new vendor, or nil when the
// name was already known. Caller must hold the write lock.
func (s *Store) registerVendor(name, fallbackCategoryID string) *Vendor {
	for i := range s.vendors {
		if strings.EqualFold(s.vendors[i].Name, name) {
			return nil
		}
	}

	categoryID := fallbackCategoryID
	if categoryID == "" {
		categoryID = FallbackCategoryID
	}

	v := Vendor{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: categoryID,
	}

	s.vendors = append(s.vendors, v)

	return &v
}

// recalcBookingExpenses replaces every booking's derived expense balance
// with the signed sum of matching ledger entries. Full recomputation keeps
// the balances drift-free against the append-only source ledger. Caller
// must hold the write lock.
func (s *Store) recalcBookingExpenses() {
	totals := make(map[string]int64, len(s.bookings))

	for _, e := range s.expenses {
		if e.BookingID == "" {
			continue
		}

		if e.Type == ExpensePaid {
			totals[e.BookingID] += e.Amount
		} else {
			totals[e.BookingID] -= e.Amount
		}
	}

	for _, b := range s.bookings {
		b.Expenses = totals[b.ID]
	}
}

// --- Reads ---

// Booking returns a deep copy of the identified booking.
func (s *Store) Booking(id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.findBooking(id)
	if b == nil {
		return nil, fmt.Errorf("%q: %w", id, ErrBookingNotFound)
	}

	return b.clone(), nil
}

// Bookings returns deep copies of all bookings in insertion order.
func (s *Store) Bookings() []*Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneBookings()
}

// Expenses returns a copy of the global expense ledger in append order.
func (s *Store) Expenses() []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Expense(nil), s.expenses...)
}

// Vendors returns a copy of the known vendors.
func (s *Store) Vendors() []Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Vendor(nil), s.vendors...)
}

// Categories returns a copy of the expense categories.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Category(nil), s.categories...)
}

// Transactions derives the merged day-book view from the current ledger
// state. The projection is recomputed on every call; nothing is cached.
func (s *Store) Transactions() []Transaction {
	s.mu.RLock()
	bookings := s.cloneBookings()
	expenses := append([]Expense(nil), s.expenses...)
	s.mu.RUnlock()

	return MergeTransactions(bookings, expenses)
}

// Seasons lists the season filter values derived from current bookings.
func (s *Store) Seasons() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Seasons(s.bookings)
}

// Config returns the current service and package configuration.
func (s *Store) Config() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// UpdateConfig replaces the service and package configuration.
func (s *Store) UpdateConfig(ctx context.Context, cfg Configuration) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()

	s.audit(AuditEntry{
		Action:     AuditUpdate,
		Collection: "settings",
		Details:    "Updated service configuration",
	})
	s.saveSnapshot(SnapshotServices, cfg)
}

// findBooking returns the store-owned booking, or nil. Caller must hold at
// least the read lock.
func (s *Store) findBooking(id string) *Booking {
	for _, b := range s.bookings {
		if b.ID == id {
			return b
		}
	}

	return nil
}

func (s *Store) findExpense(id string) *Expense {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return &s.expenses[i]
		}
	}

	return nil
}

func (s *Store) cloneBookings() []*Booking {
	out := make([]*Booking, len(s.bookings))
	for i, b := range s.bookings {
		out[i] = b.clone()
	}

	return out
}

// --- Best-effort sinks ---

func (s *Store) mirrorCreateBooking(b *Booking) {
	if s.opts.Mirror == nil {
		return
	}

	dispatch("mirror create booking", func(ctx context.Context) error {
		return s.opts.Mirror.CreateBooking(ctx, b)
	})
}

func (s *Store) mirrorUpdateBooking(b *Booking) {
	if s.opts.Mirror == nil {
		return
	}

	dispatch("mirror update booking", func(ctx context.Context) error {
		return s.opts.Mirror.UpdateBooking(ctx, b)
	})
}

func (s *Store) mirrorAddExpense(e *Expense) {
	if s.opts.Mirror == nil {
		return
	}

	dispatch("mirror add expense", func(ctx context.Context) error {
		return s.opts.Mirror.AddExpense(ctx, e)
	})
}

func (s *Store) audit(entry AuditEntry) {
	if s.opts.Audit == nil {
		return
	}

	entry.At = time.Now()

	dispatch("audit log", func(ctx context.Context) error {
		return s.opts.Audit.Log(ctx, entry)
	})
}

func (s *Store) saveSnapshot(key string, value any) {
	if s.opts.Snapshots == nil {
		return
	}

	dispatch("snapshot "+key, func(ctx context.Context) error {
		return s.opts.Snapshots.Save(ctx, key, value)
	})
}

func (s *Store) notify(message string, severity Severity) {
	if s.opts.Notifier == nil {
		return
	}

	s.opts.Notifier.Notify(message, severity)
}

// dispatch runs a sink call on its own goroutine with a bounded context.
// Failures are logged as warnings; the triggering mutation already
// committed and is never rolled back.
func dispatch(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			slog.Warn("best-effort sink failed", "op", op, "error", err)
		}
	}()
}
