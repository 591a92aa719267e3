package formatx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	assert.Equal(t, "9876543210", Phone("98765-43210"))
	assert.Equal(t, "1234567890", Phone("123 456 7890 12"))
	assert.Equal(t, "", Phone("abc"))
}

func TestDate(t *testing.T) {
	tests := map[string]string{
		"2025":       "2025",
		"20251":      "2025-1",
		"202510":     "2025-10",
		"2025103":    "2025-10-3",
		"20251003":   "2025-10-03",
		"2025-10-03": "2025-10-03",
		"2025100399": "2025-10-03",
	}
	for in, want := range tests {
		assert.Equal(t, want, Date(in), "Date(%q)", in)
	}
}

func TestNPK(t *testing.T) {
	assert.Equal(t, "10:20:10", NPK("102010"))
	assert.Equal(t, "10:2", NPK("102"))
	assert.Equal(t, "10", NPK("10"))
	assert.Equal(t, "10:20:10", NPK("10-20-10-99"))
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, "12.34", Numeric("12.345", 2))
	assert.Equal(t, "1.234", Numeric("1.2.345", 3))
	assert.Equal(t, "42", Numeric("42 kg", 2))
	assert.Equal(t, "3.", Numeric("3.", 2))
	assert.Equal(t, "18.5", Numeric("18.5%", 2))
}
