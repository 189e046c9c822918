package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HostTarget publishes the share post through the mini-app host's compose
// endpoint. Outside the host environment the request fails and the chain
// falls through to the next target.
type HostTarget struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure HostTarget implements Target
var _ Target = (*HostTarget)(nil)

// NewHostTarget creates a host-backed share target
func NewHostTarget(baseURL string, timeout time.Duration) *HostTarget {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &HostTarget{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the target in logs
func (t *HostTarget) Name() string {
	return "host"
}

// Share posts the text to the host compose endpoint
func (t *HostTarget) Share(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/compose", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("host compose returned %d", resp.StatusCode)
	}
	return nil
}
