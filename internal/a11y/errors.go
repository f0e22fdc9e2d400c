package a11y

import "fmt"

// PatternError represents a label rule whose icon pattern does not compile
type PatternError struct {
	Icon  string
	Cause error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid icon pattern %q: %v", e.Icon, e.Cause)
}

func (e *PatternError) Unwrap() error {
	return e.Cause
}

// AuditError represents a failure to parse markup for auditing
type AuditError struct {
	Cause error
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("failed to parse markup: %v", e.Cause)
}

func (e *AuditError) Unwrap() error {
	return e.Cause
}
