package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExportLocked is returned for export formats that are not available.
var ErrExportLocked = errors.New("export is locked")

// ErrSessionKind is returned when a session opened for one kind is used to
// compose another.
var ErrSessionKind = errors.New("session belongs to a different document kind")

// FieldError ties an input error to the form field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NotReady means required fields are still empty. It is an expected state
// while the form is being filled, not an error.
type NotReady struct {
	Kind    Kind
	Prompt  string
	Missing []string
}

func (n *NotReady) String() string {
	if len(n.Missing) == 0 {
		return n.Prompt
	}
	return fmt.Sprintf("%s (missing: %s)", n.Prompt, strings.Join(n.Missing, ", "))
}
