package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/portfolio-mgmt/pms-wizard/internal/validation"
)

func TestIsPresent(t *testing.T) {
	var nilPtr *int64
	one := int64(1)

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"blank string", "   ", false},
		{"string", "Contract", true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"negative", -5.0, false},
		{"positive float", 12.5, true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"id": 1}, true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"nil pointer", nilPtr, false},
		{"pointer", &one, true},
		{"zero decimal", decimal.Zero, false},
		{"decimal", decimal.NewFromInt(10), true},
		{"zero time", time.Time{}, false},
		{"bool false", false, false},
		{"bool true", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsPresent(tt.value))
		})
	}
}

func TestDateFormat(t *testing.T) {
	check := validation.DateFormat()
	now := time.Now()

	tests := []struct {
		value any
		want  bool
	}{
		{"01/15/2024", true},
		{"12/31/1999", true},
		{"2024-01-15", false},
		{"1/15/2024", false},
		{"01/5/2024", false},
		{"01/15/24", false},
		{"13/01/2024", false},
		{"02/30/2024", false},
		{"01/15/2024 ", false},
		{42.0, false},
		{"", true},
		{nil, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, check(tt.value, now), "value %v", tt.value)
	}
}

func TestDateRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	notFuture := validation.NotInFuture()
	notPast := validation.NotInPast()

	assert.True(t, notFuture("06/15/2024", now), "today is not in the future")
	assert.True(t, notFuture("06/14/2024", now))
	assert.False(t, notFuture("06/16/2024", now))

	assert.True(t, notPast("06/15/2024", now), "today is not in the past")
	assert.True(t, notPast("01/01/2025", now))
	assert.False(t, notPast("06/14/2024", now))

	// Missing and malformed values are left to the other rules.
	assert.True(t, notFuture(nil, now))
	assert.True(t, notFuture("2099-01-01", now))
	assert.True(t, notPast("", now))

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, notPast(&past, now))
	assert.True(t, notFuture(past, now))
}
