package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

func timeNow() time.Time {
	return time.Now()
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func validateDate(s string) error {
	if _, err := parseDate(s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}

	return nil
}

func validateAmount(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("expected a whole rupee amount")
	}

	if n <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	return nil
}

func methodOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Cash", string(ledger.MethodCash)),
		huh.NewOption("Card", string(ledger.MethodCard)),
		huh.NewOption("UPI", string(ledger.MethodUPI)),
		huh.NewOption("Bank", string(ledger.MethodBank)),
	}
}
