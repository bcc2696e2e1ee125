package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/middleware"
	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// =====================
// Mock: OTPStore
// =====================

type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) Create(ctx context.Context, record *models.OTPVerification) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOTPStore) CountRecent(ctx context.Context, phone string, since time.Time) (int64, error) {
	args := m.Called(ctx, phone, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOTPStore) FindLatestUnverified(ctx context.Context, phone string) (*models.OTPVerification, error) {
	args := m.Called(ctx, phone)
	rec, _ := args.Get(0).(*models.OTPVerification)
	return rec, args.Error(1)
}

func (m *MockOTPStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOTPStore) ConsumeLatest(ctx context.Context, phone, otp string) (*models.OTPVerification, error) {
	args := m.Called(ctx, phone, otp)
	rec, _ := args.Get(0).(*models.OTPVerification)
	return rec, args.Error(1)
}

// =====================
// Mock: TokenStore
// =====================

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Create(ctx context.Context, record *models.RefreshToken) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTokenStore) FindActiveByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	rec, _ := args.Get(0).(*models.RefreshToken)
	return rec, args.Error(1)
}

func (m *MockTokenStore) Revoke(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokenStore) RevokeMatching(ctx context.Context, userID primitive.ObjectID, token string) (int64, error) {
	args := m.Called(ctx, userID, token)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: UserStore
// =====================

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: SMSSender
// =====================

type StubSMSSender struct {
	mock.Mock
}

func (m *StubSMSSender) SendOTP(ctx context.Context, phone, otp string) bool {
	args := m.Called(ctx, phone, otp)
	return args.Bool(0)
}

// =====================
// Helpers
// =====================

func testAuthConfig() AuthConfig {
	return AuthConfig{
		OTPLength:        4,
		OTPExpiryMinutes: 5,
		RateLimitMax:     3,
		SingleUse:        true,
	}
}

func newTestAuthService(otps *MockOTPStore, tokens *MockTokenStore, users *MockUserStore, sms *StubSMSSender, cfg AuthConfig) *AuthService {
	return NewAuthService(otps, tokens, users, sms, nil, cfg)
}

// =====================
// SendOTP
// =====================

func TestSendOTP_Success(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	sms := new(StubSMSSender)

	phone := "9876543210"

	otps.On("CountRecent", mock.Anything, phone, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	otps.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.OTPVerification) bool {
		return rec.Phone == phone && len(rec.OTP) == 4 && rec.ExpiresAt.After(time.Now())
	})).Return(nil)
	sms.On("SendOTP", mock.Anything, phone, mock.AnythingOfType("string")).Return(true)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), sms, testAuthConfig())

	resp, err := svc.SendOTP(ctx, phone)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Greater(t, resp.ExpiresIn, 0)
	assert.LessOrEqual(t, resp.ExpiresIn, 300)

	otps.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestSendOTP_StaticDemoNumber(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	sms := new(StubSMSSender)

	phone := "3295004997"

	otps.On("CountRecent", mock.Anything, phone, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	otps.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.OTPVerification) bool {
		return rec.OTP == "3297"
	})).Return(nil)
	sms.On("SendOTP", mock.Anything, phone, "3297").Return(true)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), sms, testAuthConfig())

	resp, err := svc.SendOTP(ctx, phone)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	otps.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestSendOTP_InvalidPhone(t *testing.T) {
	svc := newTestAuthService(new(MockOTPStore), new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	for _, phone := range []string{"", "12345", "abcdefghij", "98765432101"} {
		resp, err := svc.SendOTP(context.Background(), phone)
		assert.Nil(t, resp)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "phone %q", phone)
	}
}

func TestSendOTP_RateLimited(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	sms := new(StubSMSSender)

	phone := "9876543210"

	otps.On("CountRecent", mock.Anything, phone, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), sms, testAuthConfig())

	resp, err := svc.SendOTP(ctx, phone)
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Too many OTP requests. Please try after 1 hour.", resp.Message)
	assert.Equal(t, 0, resp.ExpiresIn)

	// No record persisted, no SMS sent
	otps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sms.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOTP_DeliveryFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	sms := new(StubSMSSender)

	phone := "9876543210"

	otps.On("CountRecent", mock.Anything, phone, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	otps.On("Create", mock.Anything, mock.AnythingOfType("*models.OTPVerification")).Return(nil)
	sms.On("SendOTP", mock.Anything, phone, mock.AnythingOfType("string")).Return(false)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), sms, testAuthConfig())

	resp, err := svc.SendOTP(ctx, phone)
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to send OTP. Please try again.", resp.Message)
	assert.Equal(t, 0, resp.ExpiresIn)

	// The persisted record still counts against the rolling window
	otps.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*models.OTPVerification"))
}

// =====================
// VerifyOTP
// =====================

func pendingOTP(phone, otp string, expiresAt time.Time) *models.OTPVerification {
	return &models.OTPVerification{
		ID:        primitive.NewObjectID(),
		Phone:     phone,
		OTP:       otp,
		CreatedAt: time.Now().Add(-time.Minute),
		ExpiresAt: expiresAt,
	}
}

func TestVerifyOTP_NewUser(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	phone := "9876543210"
	otp := "1234"

	otps.On("ConsumeLatest", mock.Anything, phone, otp).
		Return(pendingOTP(phone, otp, time.Now().Add(4*time.Minute)), nil)
	users.On("FindByPhone", mock.Anything, phone).Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Phone == phone && u.Name == "" && u.IsActive
	})).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(otps, tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.IsNewUser)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// Profile not completed yet, so no user payload
	assert.Nil(t, resp.User)

	// Issued tokens must carry the right type claims
	accessClaims, err := middleware.ParseToken(resp.AccessToken, middleware.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, phone, accessClaims.Phone)

	_, err = middleware.ParseToken(resp.RefreshToken, middleware.TokenTypeRefresh)
	assert.NoError(t, err)

	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestVerifyOTP_ExistingUser(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	phone := "9876543210"
	otp := "1234"
	existing := &models.User{
		ID:       primitive.NewObjectID(),
		Phone:    phone,
		Name:     "Ramesh",
		City:     "Pune",
		Skills:   []string{"plumbing"},
		IsActive: true,
	}

	otps.On("ConsumeLatest", mock.Anything, phone, otp).
		Return(pendingOTP(phone, otp, time.Now().Add(4*time.Minute)), nil)
	users.On("FindByPhone", mock.Anything, phone).Return(existing, nil)
	users.On("UpdateLastLogin", mock.Anything, existing.ID).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(otps, tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.NotNil(t, resp.User)
	assert.Equal(t, "Ramesh", resp.User.Name)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)

	phone := "9876543210"

	otps.On("ConsumeLatest", mock.Anything, phone, "9999").Return(nil, nil)
	otps.On("FindLatestUnverified", mock.Anything, phone).
		Return(pendingOTP(phone, "1234", time.Now().Add(4*time.Minute)), nil)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, "9999")
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
	assert.EqualError(t, err, "Invalid OTP")
}

func TestVerifyOTP_NoPendingCode(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)

	phone := "9876543210"

	otps.On("ConsumeLatest", mock.Anything, phone, "1234").Return(nil, nil)
	otps.On("FindLatestUnverified", mock.Anything, phone).Return(nil, nil)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, "1234")
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
	assert.EqualError(t, err, "No OTP found for this phone number")
}

func TestVerifyOTP_Expired(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)

	phone := "9876543210"
	otp := "1234"

	otps.On("ConsumeLatest", mock.Anything, phone, otp).
		Return(pendingOTP(phone, otp, time.Now().Add(-time.Minute)), nil)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
	// Expired must be distinguishable from a wrong code
	assert.EqualError(t, err, "OTP has expired")
}

func TestVerifyOTP_MissingFields(t *testing.T) {
	svc := newTestAuthService(new(MockOTPStore), new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	cases := []struct{ phone, otp string }{
		{"", "1234"},
		{"9876543210", ""},
		{"", ""},
	}
	for _, tc := range cases {
		resp, err := svc.VerifyOTP(context.Background(), tc.phone, tc.otp)
		assert.Nil(t, resp)
		assert.True(t, utils.IsKind(err, utils.KindValidation))
	}
}

func TestVerifyOTP_UserCreateFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	phone := "9876543210"
	otp := "1234"

	otps.On("ConsumeLatest", mock.Anything, phone, otp).
		Return(pendingOTP(phone, otp, time.Now().Add(4*time.Minute)), nil)
	users.On("FindByPhone", mock.Anything, phone).Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(assert.AnError)

	svc := newTestAuthService(otps, tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindDatabase))

	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerifyOTP_RefreshStoreFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	phone := "9876543210"
	otp := "1234"
	existing := &models.User{ID: primitive.NewObjectID(), Phone: phone, IsActive: true}

	otps.On("ConsumeLatest", mock.Anything, phone, otp).
		Return(pendingOTP(phone, otp, time.Now().Add(4*time.Minute)), nil)
	users.On("FindByPhone", mock.Anything, phone).Return(existing, nil)
	users.On("UpdateLastLogin", mock.Anything, existing.ID).Return(assert.AnError)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(assert.AnError)

	svc := newTestAuthService(otps, tokens, users, new(StubSMSSender), testAuthConfig())

	// Login still succeeds when the secondary writes fail
	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestVerifyOTP_LegacyMode(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	phone := "9876543210"
	otp := "1234"
	record := pendingOTP(phone, otp, time.Now().Add(4*time.Minute))

	cfg := testAuthConfig()
	cfg.SingleUse = false

	otps.On("FindLatestUnverified", mock.Anything, phone).Return(record, nil)
	otps.On("MarkVerified", mock.Anything, record.ID).Return(nil)
	users.On("FindByPhone", mock.Anything, phone).Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(otps, tokens, users, new(StubSMSSender), cfg)

	resp, err := svc.VerifyOTP(ctx, phone, otp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	otps.AssertNotCalled(t, "ConsumeLatest", mock.Anything, mock.Anything, mock.Anything)
	otps.AssertExpectations(t)
}

func TestVerifyOTP_LegacyMode_WrongCode(t *testing.T) {
	ctx := context.Background()
	otps := new(MockOTPStore)

	phone := "9876543210"
	record := pendingOTP(phone, "1234", time.Now().Add(4*time.Minute))

	cfg := testAuthConfig()
	cfg.SingleUse = false

	otps.On("FindLatestUnverified", mock.Anything, phone).Return(record, nil)

	svc := newTestAuthService(otps, new(MockTokenStore), new(MockUserStore), new(StubSMSSender), cfg)

	resp, err := svc.VerifyOTP(ctx, phone, "9999")
	assert.Nil(t, resp)
	assert.EqualError(t, err, "Invalid OTP")

	otps.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

// =====================
// RefreshAccessToken
// =====================

func activeRefreshToken(t *testing.T, userID primitive.ObjectID, phone string) (*models.RefreshToken, string) {
	t.Helper()
	token, err := middleware.GenerateRefreshToken(userID.Hex(), phone)
	assert.NoError(t, err)
	return &models.RefreshToken{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, token
}

func TestRefreshAccessToken_RotatesPair(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	user := &models.User{ID: primitive.NewObjectID(), Phone: "9876543210", IsActive: true}
	record, oldToken := activeRefreshToken(t, user.ID, user.Phone)

	tokens.On("FindActiveByToken", mock.Anything, oldToken).Return(record, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	tokens.On("Revoke", mock.Anything, record.ID).Return(nil)
	tokens.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.RefreshToken) bool {
		return rec.UserID == user.ID && rec.Token != oldToken
	})).Return(nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.RefreshAccessToken(ctx, oldToken)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, oldToken, resp.RefreshToken)

	tokens.AssertExpectations(t)
}

func TestRefreshAccessToken_RevokedOrUnknown(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)

	tokens.On("FindActiveByToken", mock.Anything, "no-such-token").Return(nil, nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, new(MockUserStore), new(StubSMSSender), testAuthConfig())

	resp, err := svc.RefreshAccessToken(ctx, "no-such-token")
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
	assert.EqualError(t, err, "Invalid refresh token")
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	user := &models.User{ID: primitive.NewObjectID(), Phone: "9876543210", IsActive: true}
	record, token := activeRefreshToken(t, user.ID, user.Phone)
	record.ExpiresAt = time.Now().Add(-time.Hour)

	tokens.On("FindActiveByToken", mock.Anything, token).Return(record, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.RefreshAccessToken(ctx, token)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "Refresh token has expired")

	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefreshAccessToken_UserGone(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	userID := primitive.NewObjectID()
	record, token := activeRefreshToken(t, userID, "9876543210")

	tokens.On("FindActiveByToken", mock.Anything, token).Return(record, nil)
	users.On("FindByID", mock.Anything, userID).Return(nil, nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, users, new(StubSMSSender), testAuthConfig())

	resp, err := svc.RefreshAccessToken(ctx, token)
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
}

func TestRefreshAccessToken_NewStoreWriteIsFatal(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)
	users := new(MockUserStore)

	user := &models.User{ID: primitive.NewObjectID(), Phone: "9876543210", IsActive: true}
	record, token := activeRefreshToken(t, user.ID, user.Phone)

	tokens.On("FindActiveByToken", mock.Anything, token).Return(record, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	tokens.On("Revoke", mock.Anything, record.ID).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(assert.AnError)

	svc := newTestAuthService(new(MockOTPStore), tokens, users, new(StubSMSSender), testAuthConfig())

	// Unlike at login, the rotation store write must not be swallowed
	resp, err := svc.RefreshAccessToken(ctx, token)
	assert.Nil(t, resp)
	assert.True(t, utils.IsKind(err, utils.KindDatabase))
}

// =====================
// Logout
// =====================

func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)

	userID := primitive.NewObjectID()

	tokens.On("RevokeMatching", mock.Anything, userID, "some-refresh-token").Return(int64(1), nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, new(MockUserStore), new(StubSMSSender), testAuthConfig())

	err := svc.Logout(ctx, userID.Hex(), "some-refresh-token")
	assert.NoError(t, err)

	tokens.AssertExpectations(t)
}

func TestLogout_IdempotentWhenNothingRevoked(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenStore)

	userID := primitive.NewObjectID()

	tokens.On("RevokeMatching", mock.Anything, userID, "already-revoked").Return(int64(0), nil)

	svc := newTestAuthService(new(MockOTPStore), tokens, new(MockUserStore), new(StubSMSSender), testAuthConfig())

	// Logging out twice is fine
	assert.NoError(t, svc.Logout(ctx, userID.Hex(), "already-revoked"))
	assert.NoError(t, svc.Logout(ctx, userID.Hex(), "already-revoked"))
}

func TestLogout_MissingFields(t *testing.T) {
	svc := newTestAuthService(new(MockOTPStore), new(MockTokenStore), new(MockUserStore), new(StubSMSSender), testAuthConfig())

	assert.True(t, utils.IsKind(svc.Logout(context.Background(), "", "tok"), utils.KindValidation))
	assert.True(t, utils.IsKind(svc.Logout(context.Background(), primitive.NewObjectID().Hex(), ""), utils.KindValidation))
	assert.True(t, utils.IsKind(svc.Logout(context.Background(), "not-an-object-id", "tok"), utils.KindValidation))
}

// =====================
// Token type separation
// =====================

func TestTokenTypeCrossUseRejected(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	access, err := middleware.GenerateAccessToken(userID, "9876543210")
	assert.NoError(t, err)
	refresh, err := middleware.GenerateRefreshToken(userID, "9876543210")
	assert.NoError(t, err)

	_, err = middleware.ParseToken(access, middleware.TokenTypeRefresh)
	assert.ErrorIs(t, err, middleware.ErrInvalidToken)

	_, err = middleware.ParseToken(refresh, middleware.TokenTypeAccess)
	assert.ErrorIs(t, err, middleware.ErrInvalidToken)
}
