package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		pw      string
		want    PasswordStrength
		missing []string
	}{
		{
			pw:   "Abcdefg1",
			want: PasswordStrength{Length: true, Uppercase: true, Lowercase: true, Number: true},
		},
		{
			pw:      "abc12345",
			want:    PasswordStrength{Length: true, Lowercase: true, Number: true},
			missing: []string{"One uppercase letter"},
		},
		{
			pw:      "Ab1",
			want:    PasswordStrength{Uppercase: true, Lowercase: true, Number: true},
			missing: []string{"At least 8 characters"},
		},
		{
			pw:      "",
			want:    PasswordStrength{},
			missing: []string{"At least 8 characters", "One uppercase letter", "One lowercase letter", "One number"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			got := CheckPassword(tt.pw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.missing == nil, got.OK())
			assert.Equal(t, tt.missing, got.Missing())
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Sourdough2024"))

	err := ValidatePasswordStrength("sourdough")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Password does not meet requirements: One uppercase letter, One number")
}
