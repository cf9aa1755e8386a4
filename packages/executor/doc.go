// Package executor runs client work either inline on the calling goroutine or
// on a bounded pool of goroutines.
//
// SameThread is what tests use: a call made through a client runs start to
// finish on the test goroutine, so t.FailNow from inside a transport stops the
// test at the point of the request. Pool backs real clients.
package executor
