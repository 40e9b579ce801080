package validation

import "unicode"

const MinPasswordLength = 8

// PasswordStrength reports each rule of the registration password policy
// separately, so the form can show which ones are still unmet.
type PasswordStrength struct {
	Length    bool
	Uppercase bool
	Lowercase bool
	Number    bool
}

// CheckPassword evaluates pw against the policy.
func CheckPassword(pw string) PasswordStrength {
	var s PasswordStrength
	s.Length = len([]rune(pw)) >= MinPasswordLength
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			s.Uppercase = true
		case unicode.IsLower(r):
			s.Lowercase = true
		case unicode.IsDigit(r):
			s.Number = true
		}
	}
	return s
}

// OK is true when every rule holds.
func (s PasswordStrength) OK() bool {
	return s.Length && s.Uppercase && s.Lowercase && s.Number
}

// Missing lists the unmet rules in display order.
func (s PasswordStrength) Missing() []string {
	var out []string
	if !s.Length {
		out = append(out, "At least 8 characters")
	}
	if !s.Uppercase {
		out = append(out, "One uppercase letter")
	}
	if !s.Lowercase {
		out = append(out, "One lowercase letter")
	}
	if !s.Number {
		out = append(out, "One number")
	}
	return out
}
