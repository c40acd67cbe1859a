package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/config"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// VerificationAPI is the HTTP client shared by every provider service. It
// retries unavailability with exponential backoff. Each provider has its own
// circuit breaker: after BreakerMax consecutive outages that provider is not
// called until BreakerCooldown has passed, then a single trial call decides.
type VerificationAPI struct {
	client          *resty.Client
	logger          *zap.Logger
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BreakerMax      int
	BreakerCooldown time.Duration

	mu       sync.Mutex
	breakers map[string]*breakerState
}

type breakerState struct {
	consecutiveErrors int
	openedAt          time.Time
	// trial is set while the one half-open call is in flight.
	trial bool
}

func NewVerificationAPI(cfg *config.VerificationAPIConfig, logger *zap.Logger) *VerificationAPI {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &VerificationAPI{
		client:          client,
		logger:          logger.Named("verification_api"),
		MaxRetries:      max(cfg.MaxRetries, 0),
		BaseDelay:       cfg.RetryWait,
		MaxDelay:        30 * time.Second,
		BreakerMax:      cfg.BreakerMax,
		BreakerCooldown: time.Minute,
		breakers:        make(map[string]*breakerState),
	}
}

// SetTransport replaces the underlying round tripper.
func (a *VerificationAPI) SetTransport(rt http.RoundTripper) {
	a.client.SetTransport(rt)
}

func (a *VerificationAPI) post(ctx context.Context, provider, path string, body any) (verification.Payload, error) {
	return a.do(ctx, provider, http.MethodPost, path, body)
}

func (a *VerificationAPI) get(ctx context.Context, provider, path string) (verification.Payload, error) {
	return a.do(ctx, provider, http.MethodGet, path, nil)
}

func (a *VerificationAPI) do(ctx context.Context, provider, method, path string, body any) (verification.Payload, error) {
	if !a.allow(provider) {
		return nil, newProviderError(ErrorCircuitOpen, provider, "too many consecutive failures", nil)
	}

	var lastErr error = newProviderError(ErrorProviderOutage, provider, "no attempt made", nil)
	for attempt := 0; attempt <= a.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := a.calculateBackoff(attempt)
			a.logger.Debug("retrying provider call",
				zap.String("provider", provider),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				a.recordFailure(provider)
				return nil, newProviderError(ErrorTimeout, provider, "context done during retry", ctx.Err())
			}
		}

		req := a.client.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		resp, err := req.Execute(method, path)
		payload, perr := classify(provider, resp, err)
		if perr == nil {
			a.recordSuccess(provider)
			return payload, nil
		}
		lastErr = perr

		if !perr.Retryable() {
			// the provider answered, so it is reachable
			a.recordSuccess(provider)
			return nil, perr
		}
		a.logger.Warn("provider call failed",
			zap.String("provider", provider),
			zap.Int("attempt", attempt+1),
			zap.Error(perr))
	}

	a.recordFailure(provider)
	return nil, lastErr
}

func classify(provider string, resp *resty.Response, err error) (verification.Payload, *ProviderError) {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, newProviderError(ErrorTimeout, provider, "request timed out", err)
		}
		return nil, newProviderError(ErrorProviderOutage, provider, "request failed", err)
	}

	code := resp.StatusCode()
	switch {
	case code == http.StatusTooManyRequests:
		return nil, &ProviderError{Category: ErrorRateLimited, Provider: provider, StatusCode: code}
	case code >= http.StatusInternalServerError:
		return nil, &ProviderError{Category: ErrorProviderOutage, Provider: provider, StatusCode: code}
	case code < 200 || code >= 300:
		return nil, &ProviderError{
			Category:   ErrorRejected,
			Provider:   provider,
			StatusCode: code,
			Message:    gjson.GetBytes(resp.Body(), "message").String(),
		}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, &ProviderError{Category: ErrorBadData, Provider: provider, StatusCode: code, Message: "response is not a JSON object"}
	}
	return verification.Payload(body), nil
}

func (a *VerificationAPI) calculateBackoff(attempt int) time.Duration {
	delay := a.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > a.MaxDelay {
		delay = a.MaxDelay
	}
	return delay
}

// allow reports whether provider may be called now. Once the cooldown has
// passed exactly one caller gets through until that call is recorded.
func (a *VerificationAPI) allow(provider string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.breaker(provider)
	if a.BreakerMax <= 0 || b.consecutiveErrors < a.BreakerMax {
		return true
	}
	if b.trial || time.Since(b.openedAt) < a.BreakerCooldown {
		return false
	}
	b.trial = true
	return true
}

// breaker must be called with mu held.
func (a *VerificationAPI) breaker(provider string) *breakerState {
	b, ok := a.breakers[provider]
	if !ok {
		b = &breakerState{}
		a.breakers[provider] = b
	}
	return b
}

func (a *VerificationAPI) recordSuccess(provider string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.breaker(provider)
	b.consecutiveErrors = 0
	b.trial = false
}

func (a *VerificationAPI) recordFailure(provider string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.breaker(provider)
	b.consecutiveErrors++
	if a.BreakerMax > 0 && b.consecutiveErrors >= a.BreakerMax {
		if b.consecutiveErrors == a.BreakerMax || b.trial {
			a.logger.Error("circuit breaker open",
				zap.String("provider", provider),
				zap.Int("consecutive_errors", b.consecutiveErrors))
		}
		b.openedAt = time.Now()
		b.trial = false
	}
}

func requireField(provider, name, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %s is required: %w", provider, name, verification.ErrMissingInput)
	}
	return nil
}
