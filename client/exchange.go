package client

import (
	"time"

	"github.com/rocketgeek/akismetclient-go/protocol"
)

// Outcomes reported for a provider exchange besides the error type name
const (
	OutcomeSpam    = "spam"
	OutcomeHam     = "ham"
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// MetricsReporter receives one call per provider exchange
type MetricsReporter interface {
	RecordExchange(command string, outcome string, duration float64)
}

type noopMetrics struct{}

func (noopMetrics) RecordExchange(string, string, float64) {}

// Exchange describes one request/response round trip. It never carries the
// API key: the key-prefixed host is omitted and a "key" field is redacted.
type Exchange struct {
	ID       string          `json:"id"`
	Time     time.Time       `json:"time"`
	Command  string          `json:"command"`
	Path     string          `json:"path"`
	Fields   protocol.Fields `json:"fields"`
	Status   string          `json:"status,omitempty"`
	Body     string          `json:"body,omitempty"`
	Error    string          `json:"error,omitempty"`
	Duration time.Duration   `json:"duration_ns"`
}

// Recorder receives every Exchange, e.g. to keep a debugging trace
type Recorder interface {
	Record(ex Exchange) error
}

const redacted = "[REDACTED]"

func redactFields(fields protocol.Fields) protocol.Fields {
	out := make(protocol.Fields, len(fields))
	for i, f := range fields {
		if f.Name == protocol.FieldKey {
			f.Value = redacted
		}
		out[i] = f
	}
	return out
}
