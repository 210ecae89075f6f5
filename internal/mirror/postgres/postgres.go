// Package postgres mirrors ledger mutations into a durable Postgres store.
// The mirror is write-mostly and best-effort: the in-memory ledger has
// already committed by the time any method here runs, so failures are
// reported back to the caller for logging only.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// bookingRow flattens a booking for storage. The payment sequence and the
// service selections travel as JSONB documents.
func bookingArgs(b *ledger.Booking) ([]any, error) {
	payments, err := json.Marshal(b.Payments)
	if err != nil {
		return nil, fmt.Errorf("marshaling payments: %w", err)
	}

	services, err := json.Marshal(b.Services)
	if err != nil {
		return nil, fmt.Errorf("marshaling services: %w", err)
	}

	return []any{
		b.ID, b.Client, b.Status, b.Tier, b.Season, b.EventDate, b.Contact,
		b.EventType, b.Rate, b.Discount, b.Guests, b.Shift,
		services, payments, b.Expenses, b.Refund, b.CreatedBy,
	}, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *ledger.Booking) error {
	query := `
		INSERT INTO bookings (
			id, client, status, tier, season, event_date, contact,
			event_type, rate, discount, guests, shift,
			services, payments, expenses, refund, created_by,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`

	args, err := bookingArgs(b)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating booking: %w", err)
	}

	return nil
}

// UpdateBooking upserts the full row. The in-memory ledger is the source of
// truth, so the mirror never merges: last write wins.
func (s *Store) UpdateBooking(ctx context.Context, b *ledger.Booking) error {
	query := `
		INSERT INTO bookings (
			id, client, status, tier, season, event_date, contact,
			event_type, rate, discount, guests, shift,
			services, payments, expenses, refund, created_by,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			client = EXCLUDED.client,
			status = EXCLUDED.status,
			tier = EXCLUDED.tier,
			season = EXCLUDED.season,
			event_date = EXCLUDED.event_date,
			contact = EXCLUDED.contact,
			event_type = EXCLUDED.event_type,
			rate = EXCLUDED.rate,
			discount = EXCLUDED.discount,
			guests = EXCLUDED.guests,
			shift = EXCLUDED.shift,
			services = EXCLUDED.services,
			payments = EXCLUDED.payments,
			expenses = EXCLUDED.expenses,
			refund = EXCLUDED.refund,
			updated_at = NOW()
	`

	args, err := bookingArgs(b)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	return nil
}

func (s *Store) AddExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		INSERT INTO expenses (
			id, booking_id, expense_date, category, vendor, amount,
			method, type, note, manpower_count, rate_per_person,
			recorded_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	var bookingID sql.NullString
	if e.BookingID != "" {
		bookingID = sql.NullString{String: e.BookingID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		e.ID, bookingID, e.Date, e.Category, e.Vendor, e.Amount,
		e.Method, e.Type, e.Note, e.ManpowerCount, e.RatePerPerson,
		e.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}

	return nil
}
