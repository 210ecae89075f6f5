package view

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const opTimeout = 5 * time.Second

// FormatAmount renders whole rupees with Indian digit grouping, e.g.
// 125000 becomes ₹1,25,000.
func FormatAmount(rupees int64) string {
	sign := ""
	if rupees < 0 {
		sign = "-"
		rupees = -rupees
	}

	s := strconv.FormatInt(rupees, 10)

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]

		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}

		if head != "" {
			parts = append([]string{head}, parts...)
		}

		s = strings.Join(append(parts, tail), ",")
	}

	return sign + "₹" + s
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// OpCtx returns a context with a standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
