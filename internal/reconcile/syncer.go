package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fabline/internal/config"
)

const userAgent = "Fabline-Go/0.1.0"

// Syncer pushes one change record to the system of record. Any error is
// retryable; there is no permanent-failure classification.
type Syncer interface {
	Sync(ctx context.Context, change ChangeRecord) error
}

type syncPayload struct {
	SubjectID string `json:"subjectId"`
	Field     string `json:"field"`
	NewValue  string `json:"newValue"`
	Timestamp string `json:"timestamp"`
}

// HTTPSyncer submits change records to the order backend's employee
// endpoint. Any 2xx response is an acknowledgement; everything else,
// including transport errors, is a retryable failure.
type HTTPSyncer struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPSyncer builds a syncer from configuration.
func NewHTTPSyncer(cfg *config.Config) *HTTPSyncer {
	timeout := time.Duration(cfg.Backend.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSyncer{
		baseURL: cfg.Backend.BaseURL,
		token:   cfg.Backend.APIToken,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSyncer) Sync(ctx context.Context, change ChangeRecord) error {
	payload := syncPayload{
		SubjectID: change.SubjectID,
		Field:     string(change.Field),
		NewValue:  change.New,
		Timestamp: change.CreatedAt.Format(time.RFC3339Nano),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	endpoint := s.baseURL + "/employees/changes"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build change request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit change: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
