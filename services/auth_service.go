// services/auth_service.go
package services

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/middleware"
	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/utils"
)

// OTPStore is the persistence surface the auth flow needs for OTP records
type OTPStore interface {
	Create(ctx context.Context, record *models.OTPVerification) error
	CountRecent(ctx context.Context, phone string, since time.Time) (int64, error)
	FindLatestUnverified(ctx context.Context, phone string) (*models.OTPVerification, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	ConsumeLatest(ctx context.Context, phone, otp string) (*models.OTPVerification, error)
}

// TokenStore is the persistence surface for refresh token records
type TokenStore interface {
	Create(ctx context.Context, record *models.RefreshToken) error
	FindActiveByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id primitive.ObjectID) error
	RevokeMatching(ctx context.Context, userID primitive.ObjectID, token string) (int64, error)
}

// UserStore is the slice of user persistence the auth flow touches
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
}

// AuthConfig carries the tunables of the OTP flow
type AuthConfig struct {
	OTPLength        int
	OTPExpiryMinutes int
	RateLimitMax     int
	// SingleUse selects the atomic consume-on-verify path. When false the
	// original read-then-mark behavior is kept, under which two concurrent
	// verifications of the same valid code can both succeed.
	SingleUse bool
}

// DefaultAuthConfig loads the OTP tunables from the environment
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		OTPLength:        config.OTPLength(),
		OTPExpiryMinutes: config.OTPExpiryMinutes(),
		RateLimitMax:     config.OTPRateLimitMax(),
		SingleUse:        config.OTPSingleUse(),
	}
}

// AuthService orchestrates OTP send/verify, first-login provisioning, token
// rotation and logout. It owns all writes to otpVerifications and
// refreshTokens.
type AuthService struct {
	otps   OTPStore
	tokens TokenStore
	users  UserStore
	sms    SMSSender
	rdb    *redis.Client
	cfg    AuthConfig
	logger *log.Logger
}

// NewAuthService wires the auth flow. rdb may be nil; the verify-attempt
// throttle is skipped without it.
func NewAuthService(otps OTPStore, tokens TokenStore, users UserStore, sms SMSSender, rdb *redis.Client, cfg AuthConfig) *AuthService {
	return &AuthService{
		otps:   otps,
		tokens: tokens,
		users:  users,
		sms:    sms,
		rdb:    rdb,
		cfg:    cfg,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// SendOTP issues a fresh code for a phone number. Rate-limit and delivery
// failures come back as soft failures inside the response, not as errors.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (*models.SendOTPResponse, error) {
	if !utils.IsValidPhone(phone) {
		return nil, utils.NewValidationError("Invalid phone number format")
	}

	// Rate limiting - max N OTPs per phone per rolling hour, counted
	// against the persisted history
	oneHourAgo := time.Now().Add(-time.Hour)
	recent, err := s.otps.CountRecent(ctx, phone, oneHourAgo)
	if err != nil {
		s.logger.Printf("Error checking OTP rate limit for %s: %v", phone, err)
		return nil, utils.NewDatabaseError("Failed to check rate limit", err)
	}

	if recent >= int64(s.cfg.RateLimitMax) {
		utils.OTPSends.WithLabelValues("rate_limited").Inc()
		return &models.SendOTPResponse{
			Success:   false,
			Message:   "Too many OTP requests. Please try after 1 hour.",
			ExpiresIn: 0,
		}, nil
	}

	// Static OTPs for the demo/QA phone numbers, random otherwise
	otp, isStatic := utils.StaticOTPFor(phone)
	if !isStatic {
		otp, err = utils.GenerateOTP(s.cfg.OTPLength)
		if err != nil {
			return nil, utils.NewDatabaseError("Failed to generate OTP", err)
		}
	}

	expiresAt := utils.OTPExpiry(s.cfg.OTPExpiryMinutes)
	record := &models.OTPVerification{
		Phone:     phone,
		OTP:       otp,
		ExpiresAt: expiresAt,
	}

	if err := s.otps.Create(ctx, record); err != nil {
		s.logger.Printf("Database error creating OTP for %s: %v", phone, err)
		return nil, utils.NewDatabaseError("Failed to create OTP record", err)
	}

	// The record is intentionally not rolled back when delivery fails; the
	// failed attempt still counts against the rate-limit window
	if !s.sms.SendOTP(ctx, phone, otp) {
		utils.OTPSends.WithLabelValues("delivery_failed").Inc()
		return &models.SendOTPResponse{
			Success:   false,
			Message:   "Failed to send OTP. Please try again.",
			ExpiresIn: 0,
		}, nil
	}

	utils.OTPSends.WithLabelValues("sent").Inc()
	s.logger.Printf("OTP sent to %s", phone)

	return &models.SendOTPResponse{
		Success:   true,
		Message:   "OTP sent successfully",
		ExpiresIn: int(time.Until(expiresAt).Seconds()),
	}, nil
}

// VerifyOTP validates a code, provisions the user on first login and issues
// an access/refresh token pair.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, otp string) (*models.VerifyOTPResponse, error) {
	if phone == "" || otp == "" {
		return nil, utils.NewValidationError("Phone number and OTP are required")
	}
	if !utils.IsValidPhone(phone) {
		return nil, utils.NewValidationError("Invalid phone number format")
	}
	if !utils.IsValidOTP(otp) {
		return nil, utils.NewValidationError("Invalid OTP format")
	}

	// Attempt throttle; a Redis outage must not lock anyone out
	if err := utils.ValidateOTPAttempts(ctx, s.rdb, phone); err != nil {
		if errors.Is(err, utils.ErrTooManyAttempts) {
			return nil, utils.NewAuthenticationError("Too many verification attempts. Please try again later.")
		}
		s.logger.Printf("OTP attempt throttle unavailable: %v", err)
	}

	record, err := s.consumeOTP(ctx, phone, otp)
	if err != nil {
		return nil, err
	}

	if utils.IsOTPExpired(record.ExpiresAt) {
		return nil, utils.NewAuthenticationError("OTP has expired")
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		s.logger.Printf("Error fetching user %s: %v", phone, err)
		return nil, utils.NewDatabaseError("Failed to retrieve user data", err)
	}

	isNewUser := user == nil

	if isNewUser {
		// Profile fields stay empty until the profile-setup step
		user = &models.User{
			Phone:       phone,
			Name:        "",
			Skills:      []string{},
			IsActive:    true,
			LastLoginAt: time.Now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			s.logger.Printf("Error creating user %s: %v", phone, err)
			return nil, utils.NewDatabaseError("Failed to create user account", err)
		}
	} else {
		// Continue with the fetched user data if the stamp fails
		if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
			s.logger.Printf("Error updating last login for %s: %v", phone, err)
			utils.SecondaryWriteFailures.WithLabelValues("update_last_login").Inc()
		}
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID.Hex(), user.Phone)
	if err != nil {
		return nil, err
	}

	refreshToken, err := middleware.GenerateRefreshToken(user.ID.Hex(), user.Phone)
	if err != nil {
		return nil, err
	}

	// Token generation already succeeded, so a failed store write is logged
	// and swallowed; the token will not be exchangeable later
	tokenRecord := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(config.RefreshTokenTTL()),
	}
	if err := s.tokens.Create(ctx, tokenRecord); err != nil {
		s.logger.Printf("Error storing refresh token for %s: %v", phone, err)
		utils.SecondaryWriteFailures.WithLabelValues("store_refresh_token").Inc()
	}

	s.logger.Printf("User %s logged in successfully", phone)

	return &models.VerifyOTPResponse{
		Success:      true,
		IsNewUser:    isNewUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         models.FormatUser(user),
	}, nil
}

// consumeOTP resolves the pending code for a phone. In single-use mode the
// lookup and the verified flag land in one atomic conditional update; the
// legacy mode reads then marks, leaving the original race window open.
func (s *AuthService) consumeOTP(ctx context.Context, phone, otp string) (*models.OTPVerification, error) {
	if s.cfg.SingleUse {
		record, err := s.otps.ConsumeLatest(ctx, phone, otp)
		if err != nil {
			s.logger.Printf("Error consuming OTP for %s: %v", phone, err)
			return nil, utils.NewDatabaseError("Failed to verify OTP", err)
		}
		if record != nil {
			return record, nil
		}

		// Distinguish no-pending-code from wrong-code
		latest, err := s.otps.FindLatestUnverified(ctx, phone)
		if err != nil {
			return nil, utils.NewDatabaseError("Failed to verify OTP", err)
		}
		if latest == nil {
			return nil, utils.NewAuthenticationError("No OTP found for this phone number")
		}
		return nil, utils.NewAuthenticationError("Invalid OTP")
	}

	record, err := s.otps.FindLatestUnverified(ctx, phone)
	if err != nil {
		s.logger.Printf("Error fetching OTP record for %s: %v", phone, err)
		return nil, utils.NewDatabaseError("Failed to verify OTP", err)
	}
	if record == nil {
		return nil, utils.NewAuthenticationError("No OTP found for this phone number")
	}
	if record.OTP != otp {
		return nil, utils.NewAuthenticationError("Invalid OTP")
	}

	// Verification already succeeded logically; a failed flag write is not
	// allowed to abort the login
	if err := s.otps.MarkVerified(ctx, record.ID); err != nil {
		s.logger.Printf("Error marking OTP verified for %s: %v", phone, err)
		utils.SecondaryWriteFailures.WithLabelValues("mark_otp_verified").Inc()
	}

	return record, nil
}

// RefreshAccessToken rotates a refresh token: the presented token is revoked
// and a fresh access/refresh pair is issued.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*models.RefreshTokenResponse, error) {
	if refreshToken == "" {
		return nil, utils.NewValidationError("Refresh token is required")
	}

	record, err := s.tokens.FindActiveByToken(ctx, refreshToken)
	if err != nil {
		s.logger.Printf("Error fetching refresh token: %v", err)
		return nil, utils.NewDatabaseError("Failed to refresh token", err)
	}
	if record == nil {
		return nil, utils.NewAuthenticationError("Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, utils.NewDatabaseError("Failed to refresh token", err)
	}
	if user == nil {
		return nil, utils.NewAuthenticationError("User associated with token not found")
	}

	if time.Now().After(record.ExpiresAt) {
		return nil, utils.NewAuthenticationError("Refresh token has expired")
	}

	newAccessToken, err := middleware.GenerateAccessToken(user.ID.Hex(), user.Phone)
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := middleware.GenerateRefreshToken(user.ID.Hex(), user.Phone)
	if err != nil {
		return nil, err
	}

	// Old token revocation is best-effort; until a retry lands the old
	// token would still be exchangeable
	if err := s.tokens.Revoke(ctx, record.ID); err != nil {
		s.logger.Printf("Error revoking old refresh token: %v", err)
		utils.SecondaryWriteFailures.WithLabelValues("revoke_old_token").Inc()
	}

	// Unlike at login, this write must succeed: otherwise the client holds
	// a refresh token with no store entry and is permanently locked out
	newRecord := &models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshToken,
		ExpiresAt: time.Now().Add(config.RefreshTokenTTL()),
	}
	if err := s.tokens.Create(ctx, newRecord); err != nil {
		s.logger.Printf("Error storing new refresh token: %v", err)
		return nil, utils.NewDatabaseError("Failed to store new refresh token", err)
	}

	return &models.RefreshTokenResponse{
		Success:      true,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes the presented refresh token for the user. Revoking an
// already-revoked or unknown token is not an error; logout must never block
// a client from clearing local state.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if userID == "" || refreshToken == "" {
		return utils.NewValidationError("User ID and refresh token are required")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return utils.NewValidationError("Invalid user ID")
	}

	count, err := s.tokens.RevokeMatching(ctx, objID, refreshToken)
	if err != nil {
		s.logger.Printf("Error revoking refresh token for %s: %v", userID, err)
		return utils.NewDatabaseError("Failed to logout", err)
	}

	if count == 0 {
		s.logger.Printf("No active refresh token found for user %s", userID)
	}

	s.logger.Printf("User %s logged out", userID)
	return nil
}
