package api_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrowlabs/bunnyhit-go/internal/api"
	"github.com/burrowlabs/bunnyhit-go/internal/api/handler"
	"github.com/burrowlabs/bunnyhit-go/internal/api/response"
	"github.com/burrowlabs/bunnyhit-go/internal/factory"
	"github.com/burrowlabs/bunnyhit-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T, webhookSecret string) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		LeaderboardService: app.LeaderboardService,
		Storage:            app.Storage,
		Clock:              app.Clock,
		WebhookSecret:      webhookSecret,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) rawRequest(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func submitBody(fid int64, username string, score int) map[string]any {
	return map[string]any{
		"fid":      fid,
		"username": username,
		"score":    score,
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

// Score submission tests

func TestSubmitScoreCreatesEntry(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 12))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.True(t, resp.NewBest)
	assert.Equal(t, int64(42), resp.Entry.FID)
	assert.Equal(t, 12, resp.Entry.BestScore)
}

func TestSubmitLowerScoreKeepsBest(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 12))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 7))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.False(t, resp.NewBest)
	assert.Equal(t, 12, resp.Entry.BestScore)
}

func TestSubmitEqualScoreIsNotNewBest(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 12))
	require.Equal(t, http.StatusOK, rr.Code)

	// Same score again: the stored entry is untouched, so no new best
	rr = ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 12))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.False(t, resp.NewBest)
	assert.Equal(t, 12, resp.Entry.BestScore)
}

func TestSubmitZeroScoreNotStored(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 0))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.False(t, resp.NewBest)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var lb response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lb))
	assert.Empty(t, lb.Entries)
}

func TestSubmitScoreValidation(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodPost, "/api/v1/scores", submitBody(0, "alice", 5))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", -1))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.rawRequest(http.MethodPost, "/api/v1/scores", []byte("not json"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Leaderboard tests

func TestLeaderboardOrdering(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(http.MethodPost, "/api/v1/scores", submitBody(1, "alice", 5))
	ts.request(http.MethodPost, "/api/v1/scores", submitBody(2, "bob", 15))
	ts.request(http.MethodPost, "/api/v1/scores", submitBody(3, "carol", 10))

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var lb response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lb))
	require.Len(t, lb.Entries, 3)
	assert.Equal(t, "bob", lb.Entries[0].Username)
	assert.Equal(t, "carol", lb.Entries[1].Username)
	assert.Equal(t, "alice", lb.Entries[2].Username)
}

func TestLeaderboardLimit(t *testing.T) {
	ts := newTestServer(t, "")

	for fid := int64(1); fid <= 5; fid++ {
		ts.request(http.MethodPost, "/api/v1/scores", submitBody(fid, "", int(fid)))
	}

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?limit=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var lb response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lb))
	assert.Len(t, lb.Entries, 2)
}

func TestLeaderboardInvalidLimit(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?limit=banana", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Rewards tests

func TestRewardsAccrueAndClaim(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 10))
	ts.request(http.MethodPost, "/api/v1/scores", submitBody(42, "alice", 4))

	rr := ts.request(http.MethodGet, "/api/v1/rewards/42", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var balance response.RewardBalance
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
	assert.Equal(t, 140, balance.UnclaimedPoints)
	assert.Equal(t, 140, balance.TotalEarned)

	rr = ts.request(http.MethodPost, "/api/v1/rewards/42/claim", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var claim response.ClaimRewards
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &claim))
	assert.Equal(t, 140, claim.ClaimedPoints)

	rr = ts.request(http.MethodGet, "/api/v1/rewards/42", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
	assert.Equal(t, 0, balance.UnclaimedPoints)
	assert.Equal(t, 140, balance.TotalEarned)
}

func TestRewardsUnknownPlayer(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/rewards/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRewardsInvalidFID(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/rewards/banana", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rewards/-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Webhook tests

func TestWebhookAcceptsPost(t *testing.T) {
	ts := newTestServer(t, "")

	payload := []byte(`{"event":"miniapp_added","fid":42}`)
	rr := ts.rawRequest(http.MethodPost, "/api/v1/webhook", payload, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var ack response.WebhookAck
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
	assert.NotEmpty(t, ack.EventID)

	events, err := ts.storage.WebhookEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ack.EventID, events[0].ID)
	assert.JSONEq(t, string(payload), string(events[0].Payload))
}

func TestWebhookRejectsGet(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.rawRequest(http.MethodGet, "/api/v1/webhook", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// Nothing recorded on rejection
	events, err := ts.storage.WebhookEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWebhookRejectsInvalidJSON(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.rawRequest(http.MethodPost, "/api/v1/webhook", []byte("not json"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	events, err := ts.storage.WebhookEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func signPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignatureVerification(t *testing.T) {
	ts := newTestServer(t, "topsecret")
	payload := []byte(`{"event":"miniapp_added"}`)

	// Missing signature
	rr := ts.rawRequest(http.MethodPost, "/api/v1/webhook", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Wrong signature
	rr = ts.rawRequest(http.MethodPost, "/api/v1/webhook", payload, map[string]string{
		handler.SignatureHeader: signPayload("wrongsecret", payload),
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid signature
	rr = ts.rawRequest(http.MethodPost, "/api/v1/webhook", payload, map[string]string{
		handler.SignatureHeader: signPayload("topsecret", payload),
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	// Valid signature with scheme prefix
	rr = ts.rawRequest(http.MethodPost, "/api/v1/webhook", payload, map[string]string{
		handler.SignatureHeader: "sha256=" + signPayload("topsecret", payload),
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestErrorResponseShape(t *testing.T) {
	ts := newTestServer(t, "")

	rr := ts.request(http.MethodGet, "/api/v1/rewards/999", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "REWARDS_NOT_FOUND", errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}
