package store

// State is the conversation state kept per sender.
//
// DisplayName is captured from the first event that carries a profile name
// and never overwritten. Welcomed flips to true once the welcome sequence
// has been sent and never flips back.
type State struct {
	DisplayName string `json:"display_name"`
	Welcomed    bool   `json:"welcomed"`
}

// Store holds conversation state keyed by the sender's WhatsApp id.
// Get creates the default row on first access, so a row exists exactly for
// the senders that have had at least one event processed.
type Store interface {
	Get(id string) (State, error)
	SetNameIfAbsent(id, name string) error
	MarkWelcomed(id string) error
	Close() error
}
