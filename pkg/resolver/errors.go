package resolver

import "fmt"

// ResolutionError is returned for malformed queries, failed inventory calls,
// and lookups that must produce a single value but matched nothing.
type ResolutionError struct {
	Op     string // resolver operation, e.g. "resolve instances by tags"
	Detail string
	Err    error
}

func (e *ResolutionError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// resolutionErr builds a ResolutionError for a malformed or unsatisfiable query.
func resolutionErr(op, format string, args ...any) error {
	return &ResolutionError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// wrapErr builds a ResolutionError around a failed remote call.
func wrapErr(op, detail string, err error) error {
	return &ResolutionError{Op: op, Detail: detail, Err: err}
}
