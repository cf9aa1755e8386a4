package expect

import "fmt"

// MismatchError is returned when the request a client issued does not render
// like the expected one.
type MismatchError struct {
	Actual   string
	Expected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("request does not match expectation\nactual:\n%s\nexpected:\n%s", e.Actual, e.Expected)
}

// ResourceError is returned when a payload of a fixture cannot be read.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
