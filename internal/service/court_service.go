package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/verification"
	"go.uber.org/zap"
)

type CourtQuery struct {
	Name       string `json:"name"`
	FatherName string `json:"father_name,omitempty"`
	Address    string `json:"address,omitempty"`
	DOB        string `json:"dob,omitempty"`
}

type CourtServiceInterface interface {
	// Search runs an exact-match search and waits for the history report.
	Search(ctx context.Context, q CourtQuery) (verification.Payload, error)
}

type CourtService struct {
	api          *VerificationAPI
	logger       *zap.Logger
	PollInterval time.Duration
	PollAttempts int
}

func NewCourtService(api *VerificationAPI, pollInterval time.Duration, pollAttempts int, logger *zap.Logger) *CourtService {
	return &CourtService{api: api, logger: logger.Named("court"), PollInterval: pollInterval, PollAttempts: pollAttempts}
}

func (s *CourtService) Search(ctx context.Context, q CourtQuery) (verification.Payload, error) {
	if err := requireField("court", "name", strings.TrimSpace(q.Name)); err != nil {
		return nil, err
	}
	search, err := s.api.post(ctx, "court", "/court/search", q)
	if err != nil {
		return nil, err
	}

	requestID := search.Get("request_id").String()
	if requestID == "" {
		requestID = search.Get("requestId").String()
	}
	if requestID == "" {
		// synchronous providers answer the search with the result itself
		return search, nil
	}

	for attempt := 1; attempt <= s.PollAttempts; attempt++ {
		select {
		case <-time.After(s.PollInterval):
		case <-ctx.Done():
			return nil, newProviderError(ErrorTimeout, "court", "context done while polling", ctx.Err())
		}

		history, err := s.api.get(ctx, "court", "/court/history/"+url.PathEscape(requestID))
		if err != nil {
			return nil, err
		}
		if !pending(history) {
			return history, nil
		}
		s.logger.Debug("court report not ready", zap.String("request_id", requestID), zap.Int("attempt", attempt))
	}
	return nil, newProviderError(ErrorTimeout, "court", fmt.Sprintf("report %s not ready after %d polls", requestID, s.PollAttempts), nil)
}

func pending(p verification.Payload) bool {
	switch strings.ToLower(p.Get("status").String()) {
	case "pending", "processing", "in_progress", "queued":
		return true
	}
	return false
}
