// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/models"
)

// Token kinds. Access and refresh tokens are signed with the same secret and
// algorithm; the type claim is what keeps a leaked refresh token from being
// replayed as an access token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JwtCustomClaims for JWT token
type JwtCustomClaims struct {
	UserID    string `json:"userId"`
	Phone     string `json:"phone"`
	TokenType string `json:"type"`
	jwt.StandardClaims
}

// Token parse outcomes surfaced distinctly to callers
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// GetJWTSecret returns the JWT secret from environment variables. The
// process fails closed when it is absent.
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateAccessToken mints a short-lived token authorizing API calls
func GenerateAccessToken(userID, phone string) (string, error) {
	return generateToken(userID, phone, TokenTypeAccess, config.AccessTokenTTL())
}

// GenerateRefreshToken mints a long-lived token exchangeable for a new pair
func GenerateRefreshToken(userID, phone string) (string, error) {
	return generateToken(userID, phone, TokenTypeRefresh, config.RefreshTokenTTL())
}

func generateToken(userID, phone, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaims{
		UserID:    userID,
		Phone:     phone,
		TokenType: tokenType,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// ParseToken validates signature and expiry and enforces the expected token
// kind. Expired tokens are reported as ErrTokenExpired, everything else as
// ErrInvalidToken.
func ParseToken(tokenString, expectedType string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(GetJWTSecret()), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Reject cross-use of token kinds
	if claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// JWTMiddleware authenticates requests with a Bearer access token and puts
// the caller's identity into the request context.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: "No token provided",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := ParseToken(tokenString, TokenTypeAccess)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, ErrTokenExpired) {
					message = "Token has expired"
				}
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: message,
				})
			}

			c.Set("userId", claims.UserID)
			c.Set("phone", claims.Phone)

			return next(c)
		}
	}
}

// ExtractUserID returns the authenticated user's ID from the context
func ExtractUserID(c echo.Context) (string, error) {
	userID, ok := c.Get("userId").(string)
	if !ok || userID == "" {
		return "", errors.New("no authenticated user in context")
	}
	return userID, nil
}
