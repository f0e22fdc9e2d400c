package postgrest

import "fmt"

// RequestError represents a transport-level failure: the request never produced a response.
type RequestError struct {
	Method  string
	URL     string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusError represents a non-2xx response from the backend.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// DecodeError represents a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	URL   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
