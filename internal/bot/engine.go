package bot

import (
	"context"

	"github.com/rerafy/rerafybot/internal/leads"
	"github.com/rerafy/rerafybot/internal/metrics"
	"github.com/rerafy/rerafybot/internal/store"
	"github.com/rerafy/rerafybot/pkg/logging"
)

// Engine decides, for one normalized event, which replies to send and how
// conversation state changes. It never fails on input: malformed or unknown
// events fall through to an empty reply sequence.
type Engine struct {
	store    store.Store
	recorder leads.Recorder
	logger   *logging.Logger
	metrics  *metrics.Metrics

	// ResendFAQMenu sends the FAQ menu again after the PRICE/LEGAL project
	// prompt. Off by default.
	ResendFAQMenu bool
}

func NewEngine(s store.Store, rec leads.Recorder, logger *logging.Logger, m *metrics.Metrics) *Engine {
	return &Engine{store: s, recorder: rec, logger: logger, metrics: m}
}

// Handle returns the replies for ev, in delivery order. State mutations and
// the lead forward happen as side effects; their failures are logged and
// never abort the event.
func (e *Engine) Handle(ctx context.Context, ev *Event) []Reply {
	if ev == nil || ev.Kind == EventUnrecognized {
		return nil
	}

	state, err := e.store.Get(ev.Sender)
	if err != nil {
		e.logger.Error("engine: reading state", "sender", ev.Sender, "error", err)
	}

	if ev.ProfileName != "" && state.DisplayName == "" {
		if err := e.store.SetNameIfAbsent(ev.Sender, ev.ProfileName); err != nil {
			e.logger.Error("engine: capturing name", "sender", ev.Sender, "error", err)
		}
		state.DisplayName = ev.ProfileName
	}

	e.recordLead(ctx, ev, state)

	switch ev.Kind {
	case EventButton:
		return e.handleButton(ev)
	case EventText:
		return e.handleText(ev, state)
	}
	return nil
}

func (e *Engine) handleButton(ev *Event) []Reply {
	switch ev.ButtonID {
	case ButtonPrice, ButtonLegal:
		replies := []Reply{projectPrompt()}
		if e.ResendFAQMenu {
			replies = append(replies, faqMenu())
		}
		return replies
	case ButtonFAQ:
		return []Reply{faqMenu()}
	default:
		return []Reply{answerFor(ev.ButtonID)}
	}
}

func (e *Engine) handleText(ev *Event, state store.State) []Reply {
	// First-message gate: every user sees the welcome sequence exactly once
	// before any numeric shortcut is honored, even if the first message is a
	// selector like "1".
	if !state.Welcomed {
		if err := e.store.MarkWelcomed(ev.Sender); err != nil {
			e.logger.Error("engine: marking welcomed", "sender", ev.Sender, "error", err)
		}
		return []Reply{welcomeMenu(), faqMenu()}
	}

	switch ev.Text {
	case "1", "2", "3", "4":
		return []Reply{answerFor(ev.Text)}
	}
	return nil
}

func (e *Engine) recordLead(ctx context.Context, ev *Event, state store.State) {
	name := ev.ProfileName
	if name == "" {
		name = state.DisplayName
	}

	rec := leads.Record{Phone: ev.Sender, Name: name}
	switch ev.Kind {
	case EventButton:
		rec.Kind = leads.KindButton
		rec.Button = ev.ButtonID
		rec.Message = ev.ButtonTitle
	case EventText:
		rec.Kind = leads.KindText
		rec.Message = ev.Text
	}

	if err := e.recorder.Record(ctx, rec); err != nil {
		e.logger.Error("engine: forwarding lead record", "sender", ev.Sender, "error", err)
		e.metrics.ObserveLead("error")
		return
	}
	e.metrics.ObserveLead("ok")
}
