// services/sms_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rozgar360/rozgar_backend/config"
)

// SMSSender delivers one-time codes. Delivery failure is reported as false,
// never as an error; the auth flow turns it into a soft failure.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, otp string) bool
}

// NewSMSSender picks the provider from SMS_PROVIDER (mock by default)
func NewSMSSender() SMSSender {
	switch config.Env("SMS_PROVIDER", "mock") {
	case "msg91":
		return NewMSG91Sender()
	default:
		return NewMockSMSSender()
	}
}

// MockSMSSender logs the code instead of delivering it. Used in development
// and in every test.
type MockSMSSender struct {
	logger *log.Logger
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{
		logger: log.New(os.Stdout, "[SMS] ", log.LstdFlags),
	}
}

func (s *MockSMSSender) SendOTP(ctx context.Context, phone, otp string) bool {
	messageID := uuid.NewString()
	s.logger.Printf("[MOCK] OTP for %s: %s (message %s)", phone, otp, messageID)
	return true
}

// MSG91Sender delivers codes through the MSG91 SMS API
type MSG91Sender struct {
	AuthKey    string
	SenderID   string
	TemplateID string
	APIPath    string
	Client     *http.Client
	logger     *log.Logger
}

// msg91Response represents the response from the MSG91 API
type msg91Response struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewMSG91Sender() *MSG91Sender {
	return &MSG91Sender{
		AuthKey:    config.Env("MSG91_AUTH_KEY", ""),
		SenderID:   config.Env("MSG91_SENDER_ID", "ROZGAR"),
		TemplateID: config.Env("MSG91_TEMPLATE_ID", ""),
		APIPath:    "https://api.msg91.com/api/v5/otp",
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.New(os.Stdout, "[SMS] ", log.LstdFlags),
	}
}

func (s *MSG91Sender) SendOTP(ctx context.Context, phone, otp string) bool {
	params := url.Values{}
	params.Set("authkey", s.AuthKey)
	params.Set("mobile", phone)
	params.Set("otp", otp)
	params.Set("sender", s.SenderID)
	params.Set("template_id", s.TemplateID)

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, nil)
	if err != nil {
		s.logger.Printf("Failed to create MSG91 request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		s.logger.Printf("MSG91 request error: %v", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Printf("Failed to read MSG91 response: %v", err)
		return false
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Printf("MSG91 returned status %d: %s", resp.StatusCode, string(body))
		return false
	}

	var apiResp msg91Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		// Some gateways answer plain text on success
		if strings.Contains(strings.ToLower(string(body)), "success") {
			s.logger.Printf("OTP sent to %s (non-JSON response)", phone)
			return true
		}
		s.logger.Printf("Failed to parse MSG91 response: %v", err)
		return false
	}

	if apiResp.Type == "success" {
		s.logger.Printf("OTP sent to %s via MSG91", phone)
		return true
	}

	s.logger.Printf("MSG91 delivery failed: %s", apiResp.Message)
	return false
}
