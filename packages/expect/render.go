package expect

import (
	"strings"

	"github.com/abdul-hamid-achik/expectspec/packages/http"
)

// Render returns the canonical rendering of req. Reading the payload drains
// it; the payload is not released.
func Render(req *http.Request) (string, error) {
	var sb strings.Builder

	sb.WriteString(req.RequestLine())
	sb.WriteByte('\n')
	writeHeaders(&sb, req.Headers)

	if req.Payload == nil {
		sb.WriteByte('\n')
		return sb.String(), nil
	}

	writeHeaders(&sb, req.Payload.ContentMetadata().Headers())
	sb.WriteByte('\n')

	body, err := http.ReadAll(req.Payload)
	if err != nil {
		return "", &ResourceError{Op: "draining payload of " + req.RequestLine(), Err: err}
	}
	sb.WriteString(body)

	return sb.String(), nil
}

func writeHeaders(sb *strings.Builder, h http.Header) {
	for _, e := range h.Entries() {
		sb.WriteString(e.Name)
		sb.WriteString(": ")
		sb.WriteString(e.Value)
		sb.WriteByte('\n')
	}
}
