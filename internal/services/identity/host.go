package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
)

// HostConfig holds settings for the mini-app host integration
type HostConfig struct {
	// BaseURL is the host context endpoint base (e.g. http://localhost:9091)
	BaseURL string

	// Timeout bounds every host call
	Timeout time.Duration
}

// DefaultHostConfig returns sensible defaults for the host integration
func DefaultHostConfig() HostConfig {
	return HostConfig{
		BaseURL: "http://localhost:9091",
		Timeout: 5 * time.Second,
	}
}

// HostProvider resolves the player identity from the mini-app host over
// HTTP. Every failure mode (timeout, connection refused, malformed or
// empty context) collapses to ErrUnavailable.
type HostProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure HostProvider implements Provider
var _ Provider = (*HostProvider)(nil)

// NewHostProvider creates a host-backed identity provider
func NewHostProvider(cfg HostConfig, logger *slog.Logger) *HostProvider {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultHostConfig().Timeout
	}
	return &HostProvider{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// hostContext mirrors the host's context payload
type hostContext struct {
	User *struct {
		FID         int64  `json:"fid"`
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		PfpURL      string `json:"pfpUrl"`
	} `json:"user"`
}

// Available probes the host for a resolvable identity
func (p *HostProvider) Available(ctx context.Context) bool {
	_, err := p.Identity(ctx)
	return err == nil
}

// Identity fetches the player identity from the host context endpoint
func (p *HostProvider) Identity(ctx context.Context) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/context", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("host context request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("host context request rejected", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: host returned %d", ErrUnavailable, resp.StatusCode)
	}

	var hc hostContext
	if err := json.NewDecoder(resp.Body).Decode(&hc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if hc.User == nil || hc.User.FID <= 0 {
		return nil, fmt.Errorf("%w: host context has no user", ErrUnavailable)
	}

	return &model.Identity{
		FID:         model.FID(hc.User.FID),
		Username:    hc.User.Username,
		DisplayName: hc.User.DisplayName,
		AvatarURL:   hc.User.PfpURL,
	}, nil
}
