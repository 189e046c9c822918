package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/burrowlabs/bunnyhit-go/internal/api/response"
	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body
const SignatureHeader = "X-Bunnyhit-Signature"

// maxWebhookBody bounds inbound webhook payloads
const maxWebhookBody = 1 << 20 // 1 MiB

// WebhookHandler ingests inbound webhook payloads. Ingestion is an
// explicit pipeline: bound the body, verify the signature when a secret is
// configured, require valid JSON, record, then acknowledge.
type WebhookHandler struct {
	storage storage.Storage
	clock   clock.Clock
	secret  []byte
	logger  *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
// An empty secret disables signature verification.
func NewWebhookHandler(store storage.Storage, clk clock.Clock, secret string, logger *slog.Logger) *WebhookHandler {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &WebhookHandler{
		storage: store,
		clock:   clk,
		secret:  key,
		logger:  logger,
	}
}

// Receive handles POST /api/v1/webhook
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		WriteError(w, NewInvalidRequestError("request body too large or unreadable"))
		return
	}

	if h.secret != nil {
		if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
			h.logger.Warn("webhook rejected: bad signature")
			WriteError(w, model.ErrInvalidSignature)
			return
		}
	}

	if !json.Valid(body) {
		WriteError(w, model.ErrInvalidPayload)
		return
	}

	event := &model.WebhookEvent{
		ID:         uuid.NewString(),
		ReceivedAt: h.clock.Now(),
		Payload:    json.RawMessage(body),
	}

	if err := h.storage.RecordWebhookEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to record webhook event",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
		WriteError(w, NewInternalError())
		return
	}

	h.logger.Info("webhook received",
		slog.String("event_id", event.ID),
		slog.Int("payload_bytes", len(body)),
	)

	response.JSON(w, http.StatusOK, response.WebhookAck{
		Success: true,
		EventID: event.ID,
	})
}

func (h *WebhookHandler) verifySignature(body []byte, header string) bool {
	header = strings.TrimPrefix(header, "sha256=")
	provided, err := hex.DecodeString(header)
	if err != nil || len(provided) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
