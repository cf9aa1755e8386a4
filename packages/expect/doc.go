// Package expect drives API clients against a single expected request.
//
// A Driver assembles a client whose execution service is a function instead
// of a network transport. When the client issues its request, the request is
// rendered to a canonical string and compared with the rendering of the
// expected one. On a match the canned response is handed back unchanged; on a
// mismatch the test fails on the spot with both renderings in the message.
//
// Example:
//
//	d := expect.NewDriver[*compute.Client](t, rest.Provider{ID: "compute"},
//		expect.WithRegistry(registry))
//	client, err := d.CreateClient(
//		http.NewRequest("GET", "http://localhost:8774/v1.1/identity/servers").
//			SetHeader("Accept", "application/json"),
//		http.NewResponse(200, "OK").SetPayload(http.NewStringPayload(`{"servers":[]}`)),
//	)
//
// The canonical rendering is the request line, each header as "name: value"
// in insertion order, the payload's content headers, a blank line and the
// payload body. Header order and case are significant.
package expect
