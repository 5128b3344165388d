package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+919876543210", true},
		{"9876543210", true},
		{"+91 98765 43210", true},
		{"(987) 654-3210", true},
		{"0123456", false}, // leading zero
		{"12", false},      // too short
		{"abcdefghij", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ramesh", "ramesh"},
		{"100%", `100\%`},
		{"TXN_42", `TXN\_42`},
		{`a\b`, `a\\b`},
		{"%_", `\%\_`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.input))
		})
	}
}

func TestValidatePincode(t *testing.T) {
	tests := []struct {
		pincode string
		want    bool
	}{
		{"600001", true},
		{"999999", true},
		{"012345", false},
		{"60001", false},
		{"6000011", false},
		{"60000a", false},
	}

	for _, tt := range tests {
		t.Run(tt.pincode, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePincode(tt.pincode))
		})
	}
}
