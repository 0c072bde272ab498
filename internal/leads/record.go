package leads

import "context"

// Record kinds, matching the collector's "type" field.
const (
	KindButton = "button"
	KindText   = "text"
)

// Record is the normalized snapshot of one inbound interaction, forwarded to
// the external collector. Absent fields are sent as empty strings.
type Record struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Kind    string `json:"type"`
	Button  string `json:"button"`
	Message string `json:"message"`
}

// Recorder forwards lead records to the collector.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}
