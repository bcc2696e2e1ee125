package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStaticOTPFor(t *testing.T) {
	otp, ok := StaticOTPFor("3295004997")
	assert.True(t, ok)
	assert.Equal(t, "3297", otp)

	otp, ok = StaticOTPFor("4997003295")
	assert.True(t, ok)
	assert.Equal(t, "4932", otp)

	_, ok = StaticOTPFor("9876543210")
	assert.False(t, ok)
}

func TestGenerateOTP_Length(t *testing.T) {
	for _, length := range []int{4, 5, 6} {
		otp, err := GenerateOTP(length)
		assert.NoError(t, err)
		assert.Len(t, otp, length)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestGenerateOTP_ClampsOutOfRange(t *testing.T) {
	for _, length := range []int{0, 3, 7, -1} {
		otp, err := GenerateOTP(length)
		assert.NoError(t, err)
		assert.Len(t, otp, 4)
	}
}

func TestGenerateOTP_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP(6)
		assert.NoError(t, err)
		seen[otp] = true
	}
	// 50 six-digit draws colliding down to a couple of values would mean a
	// broken generator
	assert.Greater(t, len(seen), 40)
}

func TestOTPExpiry(t *testing.T) {
	expiresAt := OTPExpiry(5)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, time.Second)
	assert.False(t, IsOTPExpired(expiresAt))
	assert.True(t, IsOTPExpired(time.Now().Add(-time.Second)))
}

func TestValidateOTPAttempts_NilClient(t *testing.T) {
	assert.NoError(t, ValidateOTPAttempts(nil, nil, "9876543210"))
}
