package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIMEI(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"known valid reference number", "490154203237518", true},
		{"known valid test number", "356938035643809", true},
		{"wrong check digit", "490154203237519", false},
		{"all digits identical", "111111111111111", false},
		{"strictly sequential", "123456789012345", false},
		{"sequential but luhn-valid", "012345678901237", false},
		{"too short", "49015420323751", false},
		{"too long", "4901542032375189", false},
		{"non-digit characters", "49015420323751a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateIMEI(tt.candidate))
		})
	}
}

func TestValidateIMEIIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, ValidateIMEI("490154203237518"))
		assert.False(t, ValidateIMEI("111111111111111"))
	}
}
