// Package service provides business logic for the application.
package service

import "errors"

// User-correctable input errors. Everything in this taxonomy is surfaced to
// the submitter; none are fatal to the process. Store failures propagate
// wrapped and are kept distinct from these sentinels.
var (
	// Credential errors.
	ErrFieldsMissing    = errors.New("all fields are required")
	ErrWeakPassword     = errors.New("password does not meet the policy")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrNoSuchAccount    = errors.New("no account with that email")
	ErrBadCredentials   = errors.New("wrong password")
	ErrEmailInUse       = errors.New("email in use by another account")

	// Field validation errors.
	ErrEmptyField    = errors.New("field is empty")
	ErrInvalidNumber = errors.New("field is not a number")
	ErrNegativeValue = errors.New("field value is negative")

	// Lookup errors.
	ErrNotFound = errors.New("measurement not found")

	// Session errors.
	ErrSessionNotFound = errors.New("session not found")
)
