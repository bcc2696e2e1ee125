// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// staticOTPs maps demo/QA phone numbers to fixed codes so app-store
// reviewers can log in without receiving a real SMS.
var staticOTPs = map[string]string{
	"3295004997": "3297",
	"4997003295": "4932",
}

// StaticOTPFor returns the fixed code for a test phone number, if any
func StaticOTPFor(phone string) (string, bool) {
	otp, ok := staticOTPs[phone]
	return otp, ok
}

// GenerateOTP returns a uniformly random numeric code of the given length
func GenerateOTP(length int) (string, error) {
	if length < 4 || length > 6 {
		length = 4
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}

// OTPExpiry returns the expiry timestamp for a code issued now
func OTPExpiry(ttlMinutes int) time.Time {
	return time.Now().Add(time.Duration(ttlMinutes) * time.Minute)
}

// IsOTPExpired checks whether the code can no longer be used
func IsOTPExpired(expiresAt time.Time) bool {
	return time.Now().After(expiresAt)
}

// ErrTooManyAttempts is returned when a phone number exceeds the hourly
// verification attempt budget.
var ErrTooManyAttempts = errors.New("too many OTP attempts")

// ValidateOTPAttempts counts verification attempts per phone in Redis and
// rejects after 5 within an hour. A nil client disables the check.
func ValidateOTPAttempts(ctx context.Context, rdb *redis.Client, phone string) error {
	if rdb == nil {
		return nil
	}

	key := "otp_attempts:" + phone
	attempts, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		rdb.Expire(ctx, key, 1*time.Hour)
	}

	if attempts > 5 {
		return ErrTooManyAttempts
	}

	return nil
}
