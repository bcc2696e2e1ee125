// config/env.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Env reads a string variable with a fallback default
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt reads an integer variable with a fallback default
func EnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

// EnvBool reads a boolean variable with a fallback default
func EnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("Warning: invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}

// EnvDuration reads a duration variable (e.g. "15m", "720h") with a fallback
func EnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}

// OTPLength is the number of digits in generated codes
func OTPLength() int {
	return EnvInt("OTP_LENGTH", 4)
}

// OTPExpiryMinutes is the OTP time-to-live
func OTPExpiryMinutes() int {
	return EnvInt("OTP_EXPIRY_MINUTES", 5)
}

// OTPRateLimitMax is the max OTP sends per phone per rolling hour
func OTPRateLimitMax() int {
	return EnvInt("OTP_RATE_LIMIT_MAX", 3)
}

// OTPSingleUse selects the atomic consume-on-verify behavior. When false the
// original read-then-mark behavior is kept, which allows two concurrent
// verifications of the same code to both succeed.
func OTPSingleUse() bool {
	return EnvBool("OTP_SINGLE_USE", true)
}

// AccessTokenTTL is the access token lifetime
func AccessTokenTTL() time.Duration {
	return EnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute)
}

// RefreshTokenTTL is the refresh token lifetime
func RefreshTokenTTL() time.Duration {
	return EnvDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour)
}

// APIVersion is the path segment under /api that every route is mounted on
func APIVersion() string {
	return Env("API_VERSION", "v1")
}

// IsProduction reports whether the process runs with production error output
func IsProduction() bool {
	env := Env("ENV", "development")
	return env == "production" || env == "prod"
}
