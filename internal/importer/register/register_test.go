package register_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/heritage/internal/importer/register"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Register(t *testing.T) {
	csv := `Heritage Gardens - Expense Register,,,,,,
Season,2025-26,,,,,

Date,Booking,Category,Vendor,Amount,Method,Notes
2025-07-13,HG/2025/002,Catering,Sharma Caterers,"₹42,000",Bank,
2025-07-28,,Maintenance,Gupta Sound Service,8000,Cash,Lawn lighting repair
14/08/2025,HG/2025/001,Decoration,Royal Decor,"1,25,000",UPI,Stage setup advance
,,,Total,"1,75,000",,
`

	p := register.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, date(2025, 7, 13), params[0].Date)
	assert.Equal(t, "HG/2025/002", params[0].BookingID)
	assert.Equal(t, "Sharma Caterers", params[0].Vendor)
	assert.Equal(t, int64(42000), params[0].Amount)
	assert.Equal(t, ledger.MethodBank, params[0].Method)

	assert.Empty(t, params[1].BookingID)
	assert.Equal(t, "Lawn lighting repair", params[1].Note)
	assert.Equal(t, ledger.MethodCash, params[1].Method)

	// Slash dates and Indian digit grouping both parse.
	assert.Equal(t, date(2025, 8, 14), params[2].Date)
	assert.Equal(t, int64(125000), params[2].Amount)
	assert.Equal(t, ledger.MethodUPI, params[2].Method)
}

func TestParser_NoHeader(t *testing.T) {
	csv := `Some,Random,Sheet
1,2,3
`

	p := register.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParser_SkipsMalformedRows(t *testing.T) {
	csv := `Date,Category,Vendor,Amount
2025-07-01,Catering,Acme,1000
not-a-date,Catering,Acme,500
2025-07-02,Catering,,700
2025-07-03,Catering,Acme,-50
2025-07-04,Catering,Acme,250
`

	p := register.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, int64(1000), params[0].Amount)
	assert.Equal(t, int64(250), params[1].Amount)
}
