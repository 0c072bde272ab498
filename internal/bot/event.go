package bot

import (
	"strings"

	"github.com/rerafy/rerafybot/internal/whatsapp"
)

type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventText
	EventButton
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventButton:
		return "button"
	default:
		return "unrecognized"
	}
}

// Event is a normalized inbound webhook event.
type Event struct {
	Kind        EventKind
	Sender      string
	ProfileName string

	// EventText
	Text string

	// EventButton
	ButtonID    string
	ButtonTitle string
}

// Normalize extracts the first message from a webhook delivery. It returns
// nil when the delivery carries no message at all (status updates and other
// notifications land here too), and an EventUnrecognized event for message
// types the bot does not handle.
func Normalize(payload *whatsapp.WebhookPayload) *Event {
	if payload == nil || len(payload.Entry) == 0 {
		return nil
	}
	changes := payload.Entry[0].Changes
	if len(changes) == 0 {
		return nil
	}
	value := changes[0].Value
	if len(value.Messages) == 0 {
		return nil
	}
	msg := value.Messages[0]

	ev := &Event{
		Kind:   EventUnrecognized,
		Sender: msg.From,
	}
	if len(value.Contacts) > 0 {
		ev.ProfileName = value.Contacts[0].Profile.Name
	}

	switch msg.Type {
	case "text":
		if msg.Text != nil {
			ev.Kind = EventText
			ev.Text = strings.TrimSpace(msg.Text.Body)
		}
	case "interactive":
		if msg.Interactive != nil && msg.Interactive.Type == "button_reply" && msg.Interactive.ButtonReply != nil {
			ev.Kind = EventButton
			ev.ButtonID = msg.Interactive.ButtonReply.ID
			ev.ButtonTitle = msg.Interactive.ButtonReply.Title
		}
	}

	return ev
}
