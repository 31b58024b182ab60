// Package student contains the pure business logic for the student registry.
// Guards are pure functions that evaluate preconditions without side effects.
package student

import (
	"fmt"
	"strings"
)

// Violation classifies why a guard refused an operation.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationRequired
	ViolationDuplicateEmail
	ViolationNotFound
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed   bool
	Reason    string
	Violation Violation
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RegisterContext provides context for registration guards.
type RegisterContext struct {
	Name        string
	Email       string
	Course      string
	EmailExists bool // true if a live record already uses this email
}

// UpdateContext provides context for update guards.
// Fields hold the values after blanks were replaced by the current ones.
type UpdateContext struct {
	Key        string
	Found      bool
	Code       string // code of the record being updated
	Name       string
	Email      string
	Course     string
	EmailOwner string // code of the live record holding Email, empty if none
}

// RemoveContext provides context for removal guards.
type RemoveContext struct {
	Key   string
	Found bool
}

// CanRegister evaluates whether a student can be registered.
// Rules:
// - Name, email and course must not be blank
// - Email must not be used by another live record (case-insensitive)
func CanRegister(ctx RegisterContext) GuardResult {
	if isBlank(ctx.Name) || isBlank(ctx.Email) || isBlank(ctx.Course) {
		return GuardResult{
			Allowed:   false,
			Reason:    "name, email and course are required",
			Violation: ViolationRequired,
		}
	}

	if ctx.EmailExists {
		return GuardResult{
			Allowed:   false,
			Reason:    fmt.Sprintf("a student with email %q already exists", strings.TrimSpace(ctx.Email)),
			Violation: ViolationDuplicateEmail,
		}
	}

	return GuardResult{Allowed: true}
}

// CanUpdate evaluates whether a student record can be updated.
// Rules:
// - The key must resolve to a live record
// - Resolved fields must not be blank
// - The new email may only be held by the record itself
func CanUpdate(ctx UpdateContext) GuardResult {
	if !ctx.Found {
		return GuardResult{
			Allowed:   false,
			Reason:    fmt.Sprintf("student %q not found", ctx.Key),
			Violation: ViolationNotFound,
		}
	}

	if isBlank(ctx.Name) || isBlank(ctx.Email) || isBlank(ctx.Course) {
		return GuardResult{
			Allowed:   false,
			Reason:    "name, email and course are required",
			Violation: ViolationRequired,
		}
	}

	if ctx.EmailOwner != "" && ctx.EmailOwner != ctx.Code {
		return GuardResult{
			Allowed:   false,
			Reason:    fmt.Sprintf("email %q is already used by %s", strings.TrimSpace(ctx.Email), ctx.EmailOwner),
			Violation: ViolationDuplicateEmail,
		}
	}

	return GuardResult{Allowed: true}
}

// CanRemove evaluates whether a student record can be removed.
func CanRemove(ctx RemoveContext) GuardResult {
	if !ctx.Found {
		return GuardResult{
			Allowed:   false,
			Reason:    fmt.Sprintf("student %q not found", ctx.Key),
			Violation: ViolationNotFound,
		}
	}

	return GuardResult{Allowed: true}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
