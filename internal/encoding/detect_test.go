package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/heritage/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date,Category,Vendor,Amount\n2025-07-01,Décor,Café Events,1200\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Vendor\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date,Vendor\n", string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Décor" in Windows-1252: é = 0xE9.
	input := []byte{'D', 0xE9, 'c', 'o', 'r', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Décor\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(got))
}
