// models/auth.go

package models

// Response is the generic API envelope used for errors and simple results
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendOTPRequest is the body for POST /auth/send-otp
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// SendOTPResponse reports the outcome of an OTP send. Success=false with a
// 200-shaped body is used for business-level rejections (rate limit, SMS
// delivery failure), distinct from thrown validation errors.
type SendOTPResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"`
}

// VerifyOTPRequest is the body for POST /auth/verify-otp
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// VerifyOTPResponse carries the issued session. User is null until the
// profile-setup step has been completed.
type VerifyOTPResponse struct {
	Success      bool          `json:"success"`
	IsNewUser    bool          `json:"isNewUser"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

// RefreshTokenRequest is the body for POST /auth/refresh-token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshTokenResponse carries the rotated token pair
type RefreshTokenResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest is the body for POST /auth/logout
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Pagination is the shared paging envelope
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
