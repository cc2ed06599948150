package pipeline

import "fmt"

// ValidationError reports unusable pipeline input, such as a request with
// neither a job description nor a posting URL.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tailoring request: %s", e.Message)
}
