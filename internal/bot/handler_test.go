package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rerafy/rerafybot/internal/session"
	"github.com/rerafy/rerafybot/internal/store"
	"github.com/rerafy/rerafybot/internal/whatsapp"
	"github.com/rerafy/rerafybot/pkg/logging"
)

type sentMessage struct {
	kind string
	to   string
	body string
}

type fakeSender struct {
	sent   []sentMessage
	failOn map[int]bool // index into the send sequence
}

func (f *fakeSender) record(kind, to, body string) error {
	idx := len(f.sent)
	f.sent = append(f.sent, sentMessage{kind: kind, to: to, body: body})
	if f.failOn[idx] {
		return errors.New("send failed")
	}
	return nil
}

func (f *fakeSender) SendText(_ context.Context, to, body string) error {
	return f.record("text", to, body)
}

func (f *fakeSender) SendButtons(_ context.Context, to, body string, _ []whatsapp.Button) error {
	return f.record("buttons", to, body)
}

func (f *fakeSender) SendCTAButton(_ context.Context, to, body, _, _ string) error {
	return f.record("cta", to, body)
}

func newTestHandler(t *testing.T) (*Handler, *fakeSender, *fakeRecorder) {
	t.Helper()
	rec := &fakeRecorder{}
	engine := NewEngine(store.NewMemoryStore(), rec, logging.Default(), nil)
	sender := &fakeSender{failOn: map[int]bool{}}
	h := NewHandler(engine, sender, session.NewManager(), logging.Default(), nil)
	return h, sender, rec
}

func textPayload(from, body string) *whatsapp.WebhookPayload {
	return &whatsapp.WebhookPayload{
		Entry: []whatsapp.Entry{{
			Changes: []whatsapp.Change{{
				Value: whatsapp.ChangeValue{
					Messages: []whatsapp.Message{{
						From: from,
						Type: "text",
						Text: &whatsapp.TextContent{Body: body},
					}},
				},
			}},
		}},
	}
}

func TestHandleWebhookDeliversRepliesInOrder(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	h.HandleWebhook(context.Background(), textPayload("user", "hi"))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "buttons", sender.sent[0].kind)
	assert.Equal(t, welcomeBody, sender.sent[0].body)
	assert.Equal(t, "text", sender.sent[1].kind)
	assert.Equal(t, faqMenuBody, sender.sent[1].body)
	assert.Equal(t, "user", sender.sent[0].to)
}

func TestHandleWebhookContinuesAfterFailedSend(t *testing.T) {
	h, sender, _ := newTestHandler(t)
	sender.failOn[0] = true

	h.HandleWebhook(context.Background(), textPayload("user", "hi"))

	// The welcome send failed but the FAQ menu still went out.
	require.Len(t, sender.sent, 2)
	assert.Equal(t, faqMenuBody, sender.sent[1].body)
}

func TestHandleWebhookIgnoresEmptyDeliveries(t *testing.T) {
	h, sender, rec := newTestHandler(t)

	h.HandleWebhook(context.Background(), &whatsapp.WebhookPayload{})

	assert.Empty(t, sender.sent)
	assert.Empty(t, rec.records)
}

func TestHandleWebhookSendsNothingForUnrecognized(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	payload := textPayload("user", "x")
	payload.Entry[0].Changes[0].Value.Messages[0].Type = "image"
	payload.Entry[0].Changes[0].Value.Messages[0].Text = nil

	h.HandleWebhook(context.Background(), payload)

	assert.Empty(t, sender.sent)
}
