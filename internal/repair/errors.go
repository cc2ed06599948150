package repair

import "fmt"

// UnrecoverableError reports that every recovery strategy failed. Fragment
// holds the leading text for diagnostics; Cause is the original decode
// error.
type UnrecoverableError struct {
	Fragment string
	Cause    error
}

func (e *UnrecoverableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("json recovery failed: %v", e.Cause)
	}
	return "json recovery failed"
}

func (e *UnrecoverableError) Unwrap() error {
	return e.Cause
}
