package primary

import "errors"

// Error kinds returned by StudentService. Callers match them with errors.Is.
var (
	// ErrValidation means a required field was blank.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail means another live record already uses the email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound means no live record matches the key or email.
	ErrNotFound = errors.New("student not found")
)
