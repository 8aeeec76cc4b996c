package service

import "fmt"

// CopyError aborts a copy operation when the source graph is missing
// a referenced entity or the id mapper has no id planned for a source
// id. It surfaces to API callers as an internal server error.
type CopyError struct {
    Reason string
}

func (e *CopyError) Error() string {
    return "copy failed: " + e.Reason
}

func copyErrorf(format string, args ...interface{}) error {
    return &CopyError{Reason: fmt.Sprintf(format, args...)}
}
