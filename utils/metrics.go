// utils/metrics.go
package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SecondaryWriteFailures counts persistence failures that the auth flow
// swallows on purpose (mark-verified, revoke-old-token, lastLoginAt).
// Operators watch this to detect drift between issued tokens and the store.
var SecondaryWriteFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "rozgar",
		Subsystem: "auth",
		Name:      "secondary_write_failures_total",
		Help:      "Swallowed best-effort persistence failures by operation",
	},
	[]string{"operation"},
)

// OTPSends counts OTP send outcomes by result
var OTPSends = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "rozgar",
		Subsystem: "auth",
		Name:      "otp_sends_total",
		Help:      "OTP send attempts by outcome",
	},
	[]string{"outcome"},
)
