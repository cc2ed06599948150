package llm

import "fmt"

// ConfigurationError reports missing or unusable collaborator setup, such as
// an absent API key.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// RequestError reports a transport or protocol failure while calling the
// generation collaborator.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm request failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// EmptyOutputError reports a response carrying no usable text.
type EmptyOutputError struct {
	Message string
}

func (e *EmptyOutputError) Error() string {
	return fmt.Sprintf("llm returned empty output: %s", e.Message)
}

// MalformedOutputError reports output that stayed unparseable after the full
// recovery chain. Fragment retains the leading raw text for diagnostics.
type MalformedOutputError struct {
	Message  string
	Fragment string
	Cause    error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm returned malformed output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm returned malformed output: %s", e.Message)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}
