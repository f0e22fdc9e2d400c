package rewrite

import "fmt"

// FileError represents a failure to process one file. The batch continues past it.
type FileError struct {
	Path    string
	Op      string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// WalkError represents a failure to enumerate the target directory
type WalkError struct {
	Root  string
	Cause error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Root, e.Cause)
}

func (e *WalkError) Unwrap() error {
	return e.Cause
}
