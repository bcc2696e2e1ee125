package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{"9876543210", "0000000000", "3295004997"}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{"", "123456789", "12345678901", "987654321a", "+919876543210", "98765 43210"}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}

func TestIsValidOTP(t *testing.T) {
	valid := []string{"1234", "12345", "123456", "0000"}
	for _, otp := range valid {
		assert.True(t, IsValidOTP(otp), otp)
	}

	invalid := []string{"", "123", "1234567", "12a4", "12 34"}
	for _, otp := range invalid {
		assert.False(t, IsValidOTP(otp), otp)
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "hello", SanitizeInput("hel\x00lo"))
	assert.Equal(t, "line1\nline2", SanitizeInput("line1\nline2"))
	assert.Equal(t, "", SanitizeInput("   "))
}
