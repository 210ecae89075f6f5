package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(id, client string) *ledger.Booking {
	return &ledger.Booking{
		ID:        id,
		Client:    client,
		Status:    ledger.StatusUpcoming,
		Tier:      ledger.TierGold,
		Season:    "2025-26",
		EventDate: day(2025, time.December, 5),
		Rate:      1000,
	}
}

func emptyStore(t *testing.T) *ledger.Store {
	t.Helper()
	return ledger.NewStore(&ledger.State{Categories: ledger.DefaultCategories()}, ledger.Options{})
}

func TestStore_AddBooking(t *testing.T) {
	type testCase struct {
		name    string
		booking *ledger.Booking
		seed    *ledger.Booking
		wantErr error
	}

	tests := []testCase{
		{
			name:    "Success",
			booking: newBooking("HG/2025/010", "Asha Verma"),
		},
		{
			name:    "DuplicateID",
			booking: newBooking("HG/2025/010", "Second Client"),
			seed:    newBooking("HG/2025/010", "First Client"),
			wantErr: ledger.ErrDuplicateBooking,
		},
		{
			name:    "MissingID",
			booking: newBooking("", "No ID"),
			wantErr: ledger.ErrInvalidEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := emptyStore(t)

			if tt.seed != nil {
				_, err := store.AddBooking(context.Background(), tt.seed)
				require.NoError(t, err)
			}

			got, err := store.AddBooking(context.Background(), tt.booking)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.booking.ID, got.ID)
			assert.Empty(t, got.Payments)
			assert.Zero(t, got.Expenses)
		})
	}
}

func TestStore_BalanceFollowsExpenseLedger(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	_, err = store.AddPayment(context.Background(), "B1", ledger.PaymentParams{
		Date:   day(2025, time.September, 1),
		Amount: 600,
		Method: ledger.MethodUPI,
	})
	require.NoError(t, err)

	exp, err := store.AddExpense(context.Background(), ledger.ExpenseParams{
		BookingID: "B1",
		Date:      day(2025, time.September, 3),
		Category:  "Catering",
		Vendor:    "Sharma Caterers",
		Amount:    200,
		Method:    ledger.MethodCash,
	})
	require.NoError(t, err)

	b, err := store.Booking("B1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), b.Expenses)

	txs := store.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.DirectionIncome, txs[0].Direction)
	assert.Equal(t, int64(600), txs[0].Amount)
	assert.Equal(t, ledger.DirectionExpense, txs[1].Direction)
	assert.Equal(t, int64(200), txs[1].Amount)

	// Reverting the expense zeroes the balance and shows up as income.
	_, err = store.RevertExpense(context.Background(), exp.ID, ledger.RevertParams{
		Date:   day(2025, time.September, 4),
		Reason: "Vendor overcharged",
	})
	require.NoError(t, err)

	b, err = store.Booking("B1")
	require.NoError(t, err)
	assert.Zero(t, b.Expenses)

	txs = store.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, ledger.DirectionIncome, txs[2].Direction)
	assert.Equal(t, int64(200), txs[2].Amount)
	assert.Contains(t, txs[2].Description, "Vendor overcharged")
}

func TestStore_LedgerIsAppendOnly(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	p, err := store.AddPayment(context.Background(), "B1", ledger.PaymentParams{
		Date:   day(2025, time.September, 1),
		Amount: 500,
		Method: ledger.MethodCash,
	})
	require.NoError(t, err)

	_, err = store.RevertPayment(context.Background(), "B1", p.ID, ledger.RevertParams{
		Reason: "Event cancelled",
	})
	require.NoError(t, err)

	b, err := store.Booking("B1")
	require.NoError(t, err)
	require.Len(t, b.Payments, 2)

	// The original entry is untouched; the reversal is a new entry.
	assert.Equal(t, ledger.PaymentReceived, b.Payments[0].Type)
	assert.Equal(t, p.ID, b.Payments[0].ID)
	assert.Equal(t, ledger.PaymentReverted, b.Payments[1].Type)
	assert.Equal(t, int64(500), b.Payments[1].Amount)
	assert.Zero(t, b.Received())

	exp, err := store.AddExpense(context.Background(), ledger.ExpenseParams{
		Date:     day(2025, time.September, 2),
		Category: "Maintenance",
		Vendor:   "Gupta Sound Service",
		Amount:   900,
		Method:   ledger.MethodBank,
	})
	require.NoError(t, err)

	before := len(store.Expenses())

	_, err = store.RevertExpense(context.Background(), exp.ID, ledger.RevertParams{})
	require.NoError(t, err)

	after := store.Expenses()
	require.Len(t, after, before+1)
	assert.Equal(t, ledger.ExpensePaid, after[before-1].Type)
}

func TestStore_RevertPayment(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	p, err := store.AddPayment(context.Background(), "B1", ledger.PaymentParams{
		Amount: 750,
		Method: ledger.MethodCard,
	})
	require.NoError(t, err)

	t.Run("AmountComesFromOriginal", func(t *testing.T) {
		rev, err := store.RevertPayment(context.Background(), "B1", p.ID, ledger.RevertParams{Reason: "duplicate entry"})
		require.NoError(t, err)
		assert.Equal(t, int64(750), rev.Amount)
		assert.Equal(t, ledger.MethodCard, rev.Method)
		assert.Equal(t, ledger.PaymentReverted, rev.Type)

		// A reversal cannot itself be reverted.
		_, err = store.RevertPayment(context.Background(), "B1", rev.ID, ledger.RevertParams{})
		assert.ErrorIs(t, err, ledger.ErrAlreadyReverted)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		_, err := store.RevertPayment(context.Background(), "nope", p.ID, ledger.RevertParams{})
		assert.ErrorIs(t, err, ledger.ErrBookingNotFound)
	})

	t.Run("UnknownPayment", func(t *testing.T) {
		_, err := store.RevertPayment(context.Background(), "B1", "nope", ledger.RevertParams{})
		assert.ErrorIs(t, err, ledger.ErrPaymentNotFound)
	})
}

func TestStore_AddPayment_UnknownBooking(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddPayment(context.Background(), "missing", ledger.PaymentParams{Amount: 100, Method: ledger.MethodCash})
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)
}

func TestStore_RereadSeesNewPayment(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	viewed, err := store.Booking("B1")
	require.NoError(t, err)
	require.Empty(t, viewed.Payments)

	_, err = store.AddPayment(context.Background(), "B1", ledger.PaymentParams{Amount: 300, Method: ledger.MethodUPI})
	require.NoError(t, err)

	// The previously fetched copy is stale by design; a re-read always
	// reflects the appended payment.
	refreshed, err := store.Booking("B1")
	require.NoError(t, err)
	assert.Len(t, refreshed.Payments, 1)

	// Mutating a returned copy never leaks into the store.
	refreshed.Payments[0].Amount = 9999

	again, err := store.Booking("B1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), again.Payments[0].Amount)
}

func TestStore_VendorDedupe(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddExpense(context.Background(), ledger.ExpenseParams{
		Category: "Decoration",
		Vendor:   "Acme",
		Amount:   100,
		Method:   ledger.MethodCash,
	})
	require.NoError(t, err)

	vendors := store.Vendors()
	require.Len(t, vendors, 1)
	assert.Equal(t, "Acme", vendors[0].Name)
	assert.Equal(t, "other", vendors[0].CategoryID)

	// Same name, different case: no second vendor.
	_, err = store.AddExpense(context.Background(), ledger.ExpenseParams{
		Category: "Decoration",
		Vendor:   "ACME",
		Amount:   50,
		Method:   ledger.MethodCash,
	})
	require.NoError(t, err)

	assert.Len(t, store.Vendors(), 1)

	// A genuinely new vendor lands in the caller-specified category.
	_, err = store.AddExpense(context.Background(), ledger.ExpenseParams{
		Category:           "Catering",
		Vendor:             "Taj Caterers",
		Amount:             2000,
		Method:             ledger.MethodBank,
		FallbackCategoryID: "catering",
	})
	require.NoError(t, err)

	vendors = store.Vendors()
	require.Len(t, vendors, 2)
	assert.Equal(t, "catering", vendors[1].CategoryID)
}

func TestStore_UpdateBooking(t *testing.T) {
	store := emptyStore(t)

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	_, err = store.AddPayment(context.Background(), "B1", ledger.PaymentParams{Amount: 400, Method: ledger.MethodCash})
	require.NoError(t, err)

	_, err = store.AddExpense(context.Background(), ledger.ExpenseParams{
		BookingID: "B1",
		Category:  "Labour",
		Vendor:    "Day Crew",
		Amount:    150,
		Method:    ledger.MethodCash,
	})
	require.NoError(t, err)

	status := ledger.StatusCompleted
	rate := int64(2000)

	updated, err := store.UpdateBooking(context.Background(), "B1", ledger.BookingPatch{
		Status: &status,
		Rate:   &rate,
	})
	require.NoError(t, err)

	// Mutable fields change; the payment sequence and the derived balance
	// survive any patch.
	assert.Equal(t, ledger.StatusCompleted, updated.Status)
	assert.Equal(t, int64(2000), updated.Rate)
	assert.Len(t, updated.Payments, 1)
	assert.Equal(t, int64(150), updated.Expenses)

	_, err = store.UpdateBooking(context.Background(), "missing", ledger.BookingPatch{Status: &status})
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)
}

func TestStore_Seasons(t *testing.T) {
	store := emptyStore(t)

	b := newBooking("B1", "Client One")
	b.Season = "2027-28"

	_, err := store.AddBooking(context.Background(), b)
	require.NoError(t, err)

	seasons := store.Seasons()
	assert.Equal(t, []string{"All", "2024-25", "2025-26", "2026-27", "2027-28"}, seasons)
}

func TestStore_MirrorFailureDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mirror := ledger.NewMockMirror(ctrl)
	created := make(chan struct{})

	mirror.EXPECT().
		CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ledger.Booking) error {
			defer close(created)
			return errors.New("remote store down")
		})

	store := ledger.NewStore(&ledger.State{}, ledger.Options{Mirror: mirror})

	// The mutation commits regardless of the mirror outcome.
	got, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)
	require.NotNil(t, got)

	select {
	case <-created:
	case <-time.After(2 * time.Second):
		t.Fatal("mirror was never invoked")
	}

	b, err := store.Booking("B1")
	require.NoError(t, err)
	assert.Equal(t, "Client One", b.Client)
}

func TestStore_NotificationsPerAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := ledger.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), ledger.SeveritySuccess).Times(2)
	notifier.EXPECT().Notify(gomock.Any(), ledger.SeverityWarning).Times(2)
	notifier.EXPECT().Notify(gomock.Any(), ledger.SeverityInfo) // implicit vendor

	store := ledger.NewStore(&ledger.State{}, ledger.Options{Notifier: notifier})

	_, err := store.AddBooking(context.Background(), newBooking("B1", "Client One"))
	require.NoError(t, err)

	p, err := store.AddPayment(context.Background(), "B1", ledger.PaymentParams{Amount: 100, Method: ledger.MethodCash})
	require.NoError(t, err)

	_, err = store.RevertPayment(context.Background(), "B1", p.ID, ledger.RevertParams{})
	require.NoError(t, err)

	e, err := store.AddExpense(context.Background(), ledger.ExpenseParams{
		Category: "Other", Vendor: "Acme", Amount: 10, Method: ledger.MethodCash,
	})
	require.NoError(t, err)

	_, err = store.RevertExpense(context.Background(), e.ID, ledger.RevertParams{})
	require.NoError(t, err)
}

func TestLoadState_FallsBackToSamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snap := ledger.NewMockSnapshotter(ctrl)
	snap.EXPECT().
		Load(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("corrupt payload")).
		AnyTimes()

	state := ledger.LoadState(context.Background(), snap)

	sample := ledger.SampleState()
	assert.Len(t, state.Bookings, len(sample.Bookings))
	assert.Len(t, state.Expenses, len(sample.Expenses))
	assert.NotEmpty(t, state.Categories)
}

func TestNewStore_DerivesBalancesUpFront(t *testing.T) {
	state := ledger.SampleState()
	store := ledger.NewStore(state, ledger.Options{})

	// Sample data carries one booking-linked expense of 42000.
	b, err := store.Booking("HG/2025/002")
	require.NoError(t, err)
	assert.Equal(t, int64(42000), b.Expenses)
}
