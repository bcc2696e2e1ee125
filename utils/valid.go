// utils/valid.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	otpRegex   = regexp.MustCompile(`^\d{4,6}$`)
)

// IsValidPhone checks the 10-digit phone number format
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidOTP checks the 4-6 digit OTP format
func IsValidOTP(otp string) bool {
	return otpRegex.MatchString(otp)
}

// SanitizeInput trims whitespace and strips control characters from
// free-text fields before they reach the database
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
}
