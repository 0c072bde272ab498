package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rerafy/rerafybot/pkg/logging"
)

// EventCallback is called with each decoded webhook delivery.
type EventCallback func(ctx context.Context, payload *WebhookPayload)

type WebhookHandler struct {
	verifyToken string
	onEvent     EventCallback
	logger      *logging.Logger
}

func NewWebhookHandler(verifyToken string, logger *logging.Logger, onEvent EventCallback) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		onEvent:     onEvent,
		logger:      logger,
	}
}

// HandleVerify handles the GET webhook verification from Meta.
// Reference: https://developers.facebook.com/docs/whatsapp/cloud-api/get-started#webhook-verification
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	w.WriteHeader(http.StatusForbidden)
}

// HandleIncoming processes incoming webhook POST notifications. Meta must
// always see 200, otherwise it redelivers the same payload; decode failures
// and processing panics are logged and acknowledged anyway.
func (h *WebhookHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("webhook: panic while processing delivery", "panic", rec)
		}
		w.WriteHeader(http.StatusOK)
	}()

	var payload WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("webhook: failed to decode payload", "error", err)
		return
	}

	h.onEvent(r.Context(), &payload)
}
