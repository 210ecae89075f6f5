package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/heritage/internal/importer/register"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

// Format identifies the layout of an uploaded expense sheet.
type Format string

const (
	// FormatRegister is the venue office's hand-kept expense register,
	// exported to CSV from a spreadsheet.
	FormatRegister Format = "register"
)

type Parser interface {
	Parse(r io.Reader) ([]ledger.ExpenseParams, error)
}

type Service struct {
	registerParser Parser
}

func NewService() *Service {
	return &Service{
		registerParser: register.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]ledger.ExpenseParams, error) {
	switch format {
	case FormatRegister:
		return s.registerParser.Parse(r)
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}
}
