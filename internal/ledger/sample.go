package ledger

import "time"

// Built-in sample data, used when no snapshot exists yet so a fresh
// install starts with something to look at.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleState returns a freshly built dataset; callers own the result.
func SampleState() *State {
	return &State{
		Bookings:   sampleBookings(),
		Expenses:   sampleExpenses(),
		Vendors:    defaultVendors(),
		Categories: DefaultCategories(),
		Config: Configuration{
			Services: defaultServices(),
			Packages: defaultPackages(),
		},
	}
}

// DefaultCategories returns the stock expense categories. The manpower flag
// only changes the entry form, not the ledger arithmetic.
func DefaultCategories() []Category {
	return []Category{
		{ID: "catering", Name: "Catering"},
		{ID: "decoration", Name: "Decoration"},
		{ID: "labour", Name: "Labour", RequiresManpower: true},
		{ID: "halwai", Name: "Halwai", RequiresManpower: true},
		{ID: "sound-light", Name: "Sound & Light"},
		{ID: "maintenance", Name: "Maintenance"},
		{ID: FallbackCategoryID, Name: "Other"},
	}
}

func defaultVendors() []Vendor {
	return []Vendor{
		{ID: "v-sharma-caterers", Name: "Sharma Caterers", CategoryID: "catering"},
		{ID: "v-royal-decor", Name: "Royal Decor", CategoryID: "decoration"},
		{ID: "v-gupta-sound", Name: "Gupta Sound Service", CategoryID: "sound-light"},
	}
}

func sampleBookings() []*Booking {
	return []*Booking{
		{
			ID:        "HG/2025/001",
			Client:    "Rohan Mehta",
			Status:    StatusUpcoming,
			Tier:      TierGold,
			Season:    "2025-26",
			EventDate: date(2025, time.November, 21),
			Contact:   "98765 43210",
			EventType: "Wedding",
			Rate:      250000,
			Guests:    400,
			Shift:     ShiftNight,
			Payments: []Payment{
				{
					ID:     "p-001",
					Date:   date(2025, time.August, 2),
					Amount: 50000,
					Method: MethodUPI,
					Type:   PaymentReceived,
				},
			},
			CreatedAt: date(2025, time.August, 2),
		},
		{
			ID:        "HG/2025/002",
			Client:    "Anita Desai",
			Status:    StatusCompleted,
			Tier:      TierSilver,
			Season:    "2025-26",
			EventDate: date(2025, time.July, 14),
			Contact:   "91234 56780",
			EventType: "Reception",
			Rate:      120000,
			Discount:  5000,
			Guests:    150,
			Shift:     ShiftDay,
			Payments: []Payment{
				{
					ID:     "p-002",
					Date:   date(2025, time.June, 20),
					Amount: 60000,
					Method: MethodBank,
					Type:   PaymentReceived,
				},
				{
					ID:     "p-003",
					Date:   date(2025, time.July, 15),
					Amount: 55000,
					Method: MethodCash,
					Type:   PaymentReceived,
				},
			},
			CreatedAt: date(2025, time.June, 20),
		},
	}
}

func sampleExpenses() []Expense {
	return []Expense{
		{
			ID:        "e-001",
			BookingID: "HG/2025/002",
			Date:      date(2025, time.July, 13),
			Category:  "Catering",
			Vendor:    "Sharma Caterers",
			Amount:    42000,
			Method:    MethodBank,
			Type:      ExpensePaid,
		},
		{
			ID:       "e-002",
			Date:     date(2025, time.July, 28),
			Category: "Maintenance",
			Vendor:   "Gupta Sound Service",
			Amount:   8000,
			Method:   MethodCash,
			Type:     ExpensePaid,
			Note:     "Lawn lighting repair",
		},
	}
}

func defaultServices() ServiceConfig {
	return ServiceConfig{
		Infrastructure: []Service{
			{ID: "generator", Name: "Generator Backup", Kind: ServiceCheckbox},
			{ID: "ac-hall", Name: "AC Hall", Kind: ServiceCheckbox},
			{ID: "parking", Name: "Valet Parking", Kind: ServiceCheckbox},
		},
		Decoration: []Service{
			{ID: "stage", Name: "Stage Theme", Kind: ServiceDropdown, Options: []string{"Classic", "Floral", "Royal"}},
			{ID: "entry-arch", Name: "Entry Arch", Kind: ServiceCheckbox},
		},
		Labour: []Service{
			{ID: "waiters", Name: "Waiters", Kind: ServiceNumber, Min: 0, Max: 50},
		},
		Halwai: []Service{
			{ID: "counters", Name: "Food Counters", Kind: ServiceNumber, Min: 1, Max: 20},
		},
		Extra: []Service{
			{ID: "fireworks", Name: "Fireworks", Kind: ServiceCheckbox},
		},
	}
}

func defaultPackages() []Package {
	return []Package{
		{
			ID:    "pkg-silver",
			Name:  "Silver",
			Price: 120000,
			Services: map[string]ServiceSelection{
				"generator": {Enabled: true},
				"waiters":   {Count: 10},
			},
		},
		{
			ID:    "pkg-gold",
			Name:  "Gold",
			Price: 250000,
			Services: map[string]ServiceSelection{
				"generator": {Enabled: true},
				"ac-hall":   {Enabled: true},
				"stage":     {Option: "Floral"},
				"waiters":   {Count: 20},
				"counters":  {Count: 6},
			},
		},
		{
			ID:    "pkg-diamond",
			Name:  "Diamond",
			Price: 400000,
			Services: map[string]ServiceSelection{
				"generator": {Enabled: true},
				"ac-hall":   {Enabled: true},
				"parking":   {Enabled: true},
				"stage":     {Option: "Royal"},
				"waiters":   {Count: 35},
				"counters":  {Count: 10},
				"fireworks": {Enabled: true},
			},
		},
	}
}
