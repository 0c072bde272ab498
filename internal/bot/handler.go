package bot

import (
	"context"

	"github.com/rerafy/rerafybot/internal/metrics"
	"github.com/rerafy/rerafybot/internal/session"
	"github.com/rerafy/rerafybot/internal/whatsapp"
	"github.com/rerafy/rerafybot/pkg/logging"
)

// Sender delivers outbound messages to the WhatsApp API.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, buttons []whatsapp.Button) error
	SendCTAButton(ctx context.Context, to, body, display, url string) error
}

// Handler glues the webhook to the engine: it normalizes the delivery, runs
// the engine under the per-sender lock and delivers the replies in order.
type Handler struct {
	engine  *Engine
	sender  Sender
	locks   *session.Manager
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func NewHandler(engine *Engine, sender Sender, locks *session.Manager, logger *logging.Logger, m *metrics.Metrics) *Handler {
	return &Handler{engine: engine, sender: sender, locks: locks, logger: logger, metrics: m}
}

// HandleWebhook processes one webhook delivery.
func (h *Handler) HandleWebhook(ctx context.Context, payload *whatsapp.WebhookPayload) {
	ev := Normalize(payload)
	if ev == nil {
		h.logger.Debug("bot: delivery carried no message")
		return
	}
	h.metrics.ObserveInbound(ev.Kind.String())

	h.locks.WithLock(ev.Sender, func() error {
		replies := h.engine.Handle(ctx, ev)
		// Replies go out one at a time so the user reads them in engine
		// order. A failed send is logged and the rest still go out.
		for _, rep := range replies {
			if err := h.send(ctx, ev.Sender, rep); err != nil {
				h.logger.Error("bot: failed to send reply",
					"sender", ev.Sender, "type", rep.Kind.String(), "error", err)
				h.metrics.ObserveOutbound(rep.Kind.String(), "error")
				continue
			}
			h.metrics.ObserveOutbound(rep.Kind.String(), "ok")
		}
		return nil
	})
}

func (h *Handler) send(ctx context.Context, to string, rep Reply) error {
	switch rep.Kind {
	case ReplyButtons:
		return h.sender.SendButtons(ctx, to, rep.Body, toWAButtons(rep.Buttons))
	case ReplyCTA:
		return h.sender.SendCTAButton(ctx, to, rep.Body, rep.Display, rep.URL)
	default:
		return h.sender.SendText(ctx, to, rep.Body)
	}
}

func toWAButtons(buttons []ButtonOption) []whatsapp.Button {
	wa := make([]whatsapp.Button, len(buttons))
	for i, b := range buttons {
		wa[i] = whatsapp.Button{
			Type:  "reply",
			Reply: whatsapp.ButtonReply{ID: b.ID, Title: b.Title},
		}
	}
	return wa
}
