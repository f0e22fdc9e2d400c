package rules

import "fmt"

// LoadError represents a failure to read, parse or validate a rule file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rules file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rules file %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
