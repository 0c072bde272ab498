package bot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rerafy/rerafybot/internal/whatsapp"
)

func decodePayload(t *testing.T, raw string) *whatsapp.WebhookPayload {
	t.Helper()
	var payload whatsapp.WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return &payload
}

func TestNormalizeTextMessage(t *testing.T) {
	payload := decodePayload(t, `{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {
			"contacts": [{"profile": {"name": "Asha"}, "wa_id": "919812345678"}],
			"messages": [{"from": "919812345678", "id": "wamid.1", "type": "text",
				"text": {"body": "  hello there  "}}]
		}}]}]
	}`)

	ev := Normalize(payload)

	require.NotNil(t, ev)
	assert.Equal(t, EventText, ev.Kind)
	assert.Equal(t, "919812345678", ev.Sender)
	assert.Equal(t, "Asha", ev.ProfileName)
	assert.Equal(t, "hello there", ev.Text, "body should be trimmed")
}

func TestNormalizeButtonReply(t *testing.T) {
	payload := decodePayload(t, `{
		"entry": [{"changes": [{"value": {
			"messages": [{"from": "919812345678", "type": "interactive",
				"interactive": {"type": "button_reply",
					"button_reply": {"id": "PRICE", "title": "Price Check"}}}]
		}}]}]
	}`)

	ev := Normalize(payload)

	require.NotNil(t, ev)
	assert.Equal(t, EventButton, ev.Kind)
	assert.Equal(t, "PRICE", ev.ButtonID)
	assert.Equal(t, "Price Check", ev.ButtonTitle)
	assert.Empty(t, ev.ProfileName, "no contact block means no name")
}

func TestNormalizeNoMessage(t *testing.T) {
	for name, raw := range map[string]string{
		"empty payload":  `{}`,
		"empty entry":    `{"entry": []}`,
		"empty changes":  `{"entry": [{"changes": []}]}`,
		"statuses only":  `{"entry": [{"changes": [{"value": {"statuses": [{"id": "wamid.1", "status": "delivered"}]}}]}]}`,
		"empty messages": `{"entry": [{"changes": [{"value": {"messages": []}}]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, Normalize(decodePayload(t, raw)))
		})
	}
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeUnsupportedKinds(t *testing.T) {
	for name, raw := range map[string]string{
		"image":            `{"entry": [{"changes": [{"value": {"messages": [{"from": "1", "type": "image"}]}}]}]}`,
		"location":         `{"entry": [{"changes": [{"value": {"messages": [{"from": "1", "type": "location"}]}}]}]}`,
		"list reply":       `{"entry": [{"changes": [{"value": {"messages": [{"from": "1", "type": "interactive", "interactive": {"type": "list_reply"}}]}}]}]}`,
		"text without body": `{"entry": [{"changes": [{"value": {"messages": [{"from": "1", "type": "text"}]}}]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			ev := Normalize(decodePayload(t, raw))
			require.NotNil(t, ev)
			assert.Equal(t, EventUnrecognized, ev.Kind)
			assert.Equal(t, "1", ev.Sender)
		})
	}
}

func TestNormalizeUsesFirstMessageOnly(t *testing.T) {
	payload := decodePayload(t, `{
		"entry": [{"changes": [{"value": {
			"messages": [
				{"from": "1", "type": "text", "text": {"body": "first"}},
				{"from": "2", "type": "text", "text": {"body": "second"}}
			]
		}}]}]
	}`)

	ev := Normalize(payload)

	require.NotNil(t, ev)
	assert.Equal(t, "first", ev.Text)
	assert.Equal(t, "1", ev.Sender)
}
