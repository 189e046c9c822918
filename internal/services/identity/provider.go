package identity

import (
	"context"
	"errors"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
)

// ErrUnavailable indicates no player identity could be resolved.
// Callers treat this as "guest mode", never as a fatal condition.
var ErrUnavailable = errors.New("player identity unavailable")

// Provider supplies the player identity from the surrounding host.
// The host integration is capability-checked: Available probes for it and
// Identity must never be assumed to succeed.
type Provider interface {
	// Available reports whether an identity can currently be resolved
	Available(ctx context.Context) bool

	// Identity returns the player identity, or ErrUnavailable
	Identity(ctx context.Context) (*model.Identity, error)
}

// StaticProvider serves a fixed identity. Used by the CLI and tests.
type StaticProvider struct {
	identity model.Identity
}

// Ensure StaticProvider implements Provider
var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider that always returns id
func NewStaticProvider(id model.Identity) *StaticProvider {
	return &StaticProvider{identity: id}
}

// Available reports whether the fixed identity is usable
func (p *StaticProvider) Available(ctx context.Context) bool {
	return p.identity.Valid()
}

// Identity returns the fixed identity
func (p *StaticProvider) Identity(ctx context.Context) (*model.Identity, error) {
	if !p.identity.Valid() {
		return nil, ErrUnavailable
	}
	id := p.identity
	return &id, nil
}

// NoneProvider never resolves an identity. It models running outside the
// mini-app host entirely.
type NoneProvider struct{}

var _ Provider = (*NoneProvider)(nil)

// Available always reports false
func (p *NoneProvider) Available(ctx context.Context) bool {
	return false
}

// Identity always returns ErrUnavailable
func (p *NoneProvider) Identity(ctx context.Context) (*model.Identity, error) {
	return nil, ErrUnavailable
}
