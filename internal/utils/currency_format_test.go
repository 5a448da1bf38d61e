package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50000.00", FormatAmount(decimal.NewFromInt(50000)))
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.345")))
	assert.Equal(t, "-100.50", FormatAmount(decimal.RequireFromString("-100.5")))
	assert.Equal(t, "7", FormatWithPrecision(decimal.RequireFromString("7.2"), 0))
}
