package ledger

import (
	"context"
	"log/slog"
)

// Configuration groups the service and package setup that the control
// centre edits and bookings reference.
type Configuration struct {
	Services ServiceConfig `json:"services"`
	Packages []Package     `json:"packages"`
}

// State is the whole dataset a store owns.
type State struct {
	Bookings   []*Booking
	Expenses   []Expense
	Vendors    []Vendor
	Categories []Category
	Config     Configuration
}

// LoadState reads every collection from the snapshotter. A nil snapshotter,
// a missing key, or a malformed payload falls back to the built-in sample
// data for that collection; startup never fails on cache state.
func LoadState(ctx context.Context, snap Snapshotter) *State {
	state := SampleState()

	if snap == nil {
		return state
	}

	load := func(key string, into any) bool {
		if err := snap.Load(ctx, key, into); err != nil {
			slog.Info("snapshot unavailable, using sample data", "key", key, "error", err)
			return false
		}

		return true
	}

	var bookings []*Booking
	if load(SnapshotBookings, &bookings) && bookings != nil {
		state.Bookings = bookings
	}

	var expenses []Expense
	if load(SnapshotExpenses, &expenses) && expenses != nil {
		state.Expenses = expenses
	}

	var vendors []Vendor
	if load(SnapshotVendors, &vendors) && vendors != nil {
		state.Vendors = vendors
	}

	var categories []Category
	if load(SnapshotCategories, &categories) && categories != nil {
		state.Categories = categories
	}

	var config Configuration
	if load(SnapshotServices, &config) && len(config.Packages) > 0 {
		state.Config = config
	}

	return state
}
