// Package notify provides Notifier implementations for surfacing ledger
// action outcomes.
package notify

import (
	"log/slog"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

// Log writes notifications to the structured log, mapping severity onto
// log levels. It is the default sink for the API binary, where there is no
// interactive user to toast.
type Log struct{}

func (Log) Notify(message string, severity ledger.Severity) {
	switch severity {
	case ledger.SeverityError:
		slog.Error(message)
	case ledger.SeverityWarning:
		slog.Warn(message)
	default:
		slog.Info(message, "severity", severity)
	}
}
