package ledger

import (
	"context"
	"time"
)

//go:generate mockgen -source=sinks.go -destination=sinks_mock.go -package=ledger

// Mirror is the remote persistence boundary. Every store mutation is
// mirrored through it after the in-memory commit, on its own goroutine; a
// mirror failure is logged and never rolls the mutation back. The in-memory
// ledger stays the authoritative, immediately consistent source of truth.
type Mirror interface {
	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBooking(ctx context.Context, b *Booking) error
	AddExpense(ctx context.Context, e *Expense) error
}

// AuditAction names what happened to a collection.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
)

// AuditEntry records who did what to which record.
type AuditEntry struct {
	Action      AuditAction `json:"action"`
	Collection  string      `json:"collection"`
	TargetID    string      `json:"target_id,omitempty"`
	PerformedBy string      `json:"performed_by"`
	Details     string      `json:"details"`
	At          time.Time   `json:"at"`
}

// AuditLogger receives audit entries, fire-and-forget.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry) error
}

// Snapshot keys for the durable whole-collection cache.
const (
	SnapshotBookings   = "hg:bookings"
	SnapshotExpenses   = "hg:expenses"
	SnapshotVendors    = "hg:vendors"
	SnapshotCategories = "hg:categories"
	SnapshotServices   = "hg:services"
)

// Snapshotter reads and writes whole collections under fixed keys so state
// survives process restarts. Saves run best-effort after each mutation;
// loads happen once at startup with a fallback to built-in sample data.
type Snapshotter interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, into any) error
}

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notifier surfaces the outcome of ledger actions to the user. It must not
// block and must not fail the action.
type Notifier interface {
	Notify(message string, severity Severity)
}
