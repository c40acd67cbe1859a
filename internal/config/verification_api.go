package config

import (
	"sync"
	"time"
)

// VerificationAPIConfig holds the settings shared by every provider service.
type VerificationAPIConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	RetryWait  time.Duration
	// BreakerMax is the number of consecutive failures after which calls are refused.
	BreakerMax int

	CourtPollInterval time.Duration
	CourtPollAttempts int
}

var (
	verificationAPIConfig *VerificationAPIConfig
	verificationAPIOnce   sync.Once
)

func LoadVerificationAPIConfig() *VerificationAPIConfig {
	verificationAPIOnce.Do(func() {
		e := env()
		verificationAPIConfig = &VerificationAPIConfig{
			BaseURL:           e.GetString("VERIFICATION_API_BASE_URL"),
			APIKey:            e.GetString("VERIFICATION_API_KEY"),
			Timeout:           e.GetDuration("VERIFICATION_API_TIMEOUT"),
			MaxRetries:        e.GetInt("VERIFICATION_API_RETRIES"),
			RetryWait:         e.GetDuration("VERIFICATION_API_RETRY_WAIT"),
			BreakerMax:        e.GetInt("VERIFICATION_API_BREAKER_MAX"),
			CourtPollInterval: e.GetDuration("COURT_POLL_INTERVAL"),
			CourtPollAttempts: e.GetInt("COURT_POLL_ATTEMPTS"),
		}
	})
	return verificationAPIConfig
}
