// Package http models the requests and responses exchanged by API clients and
// the pipeline that executes them.
//
// It provides:
//   - Request and Response values with an insertion-ordered Header
//   - Payloads with content metadata and single release semantics
//   - The Transport role (convert, invoke, cleanup) and the pipeline that
//     drives it with retry and error handlers
//   - NetTransport, the net/http backed transport
package http
