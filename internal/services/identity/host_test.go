package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/testutil"
)

func hostProvider(t *testing.T, handler http.HandlerFunc) *HostProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultHostConfig()
	cfg.BaseURL = server.URL
	return NewHostProvider(cfg, testutil.NopLogger())
}

func TestHostProviderResolvesIdentity(t *testing.T) {
	provider := hostProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/context", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"fid":42,"username":"alice","displayName":"Alice","pfpUrl":"https://example.com/a.png"}}`))
	})

	id, err := provider.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.FID(42), id.FID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "Alice", id.DisplayName)
	assert.Equal(t, "https://example.com/a.png", id.AvatarURL)
	assert.True(t, provider.Available(context.Background()))
}

func TestHostProviderNoUser(t *testing.T) {
	provider := hostProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, provider.Available(context.Background()))
}

func TestHostProviderInvalidFID(t *testing.T) {
	provider := hostProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"fid":0,"username":"nobody"}}`))
	})

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHostProviderErrorStatus(t *testing.T) {
	provider := hostProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHostProviderMalformedBody(t *testing.T) {
	provider := hostProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHostProviderUnreachable(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.BaseURL = "http://127.0.0.1:1"
	provider := NewHostProvider(cfg, testutil.NopLogger())

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider(model.Identity{FID: 42, Username: "alice"})

	id, err := provider.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.FID(42), id.FID)
	assert.True(t, provider.Available(context.Background()))
}

func TestStaticProviderInvalidIdentity(t *testing.T) {
	provider := NewStaticProvider(model.Identity{})

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, provider.Available(context.Background()))
}

func TestNoneProvider(t *testing.T) {
	provider := &NoneProvider{}

	_, err := provider.Identity(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, provider.Available(context.Background()))
}
