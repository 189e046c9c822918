package model

import (
	"encoding/json"
	"time"
)

// WebhookEvent is an inbound webhook payload as recorded at ingestion.
// The payload is opaque: it is validated as JSON and size-bounded but no
// schema is enforced.
type WebhookEvent struct {
	ID         string          `json:"id"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}
