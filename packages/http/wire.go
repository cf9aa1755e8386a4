package http

import (
	"github.com/abdul-hamid-achik/expectspec/packages/logging"
)

// Wire logs the request and status lines of every command, with headers.
// Payload bodies are never logged since reading them would consume them.
type Wire struct {
	logger logging.Logger
}

// NewWire returns a Wire writing to logger.
func NewWire(logger logging.Logger) *Wire {
	return &Wire{logger: logger}
}

// Output logs an outgoing request. A nil Wire does nothing.
func (w *Wire) Output(cmd *Command) {
	if w == nil {
		return
	}
	w.logger.Printf("[%s] >> %s", cmd.ID, cmd.Request.RequestLine())
	w.headers(cmd.ID, ">>", cmd.Request.Headers)
	if cmd.Request.Payload != nil {
		w.headers(cmd.ID, ">>", cmd.Request.Payload.ContentMetadata().Headers())
	}
}

// Input logs a received response. A nil Wire does nothing.
func (w *Wire) Input(cmd *Command, resp *Response) {
	if w == nil {
		return
	}
	w.logger.Printf("[%s] << %s", cmd.ID, resp.StatusLine())
	w.headers(cmd.ID, "<<", resp.Headers)
}

func (w *Wire) headers(id, dir string, h Header) {
	for _, e := range h.Entries() {
		w.logger.Printf("[%s] %s %s: %s", id, dir, e.Name, e.Value)
	}
}
