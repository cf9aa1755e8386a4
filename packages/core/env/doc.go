// Package env resolves {{...}} placeholders in expectation fixtures.
//
// It provides functionality for:
//   - Variable interpolation using {{variable}} syntax
//   - Environment variables using {{$NAME}}
//   - Built-in function evaluation such as {{basicAuth(user, pass)}}
package env
