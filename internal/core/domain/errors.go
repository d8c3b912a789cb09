package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// ValidationError reports required fields that were absent (or empty) in a
// create/update payload.
type ValidationError struct {
	Kind    Kind
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// NotFoundError reports a primary-key lookup miss for a single record.
type NotFoundError struct {
	Resource string // singular kind name, e.g. "employee"
	Key      any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

// NoRecordsError reports an empty result set on a list read. The API treats
// an empty collection as a 404, matching the wire contract of the original
// service.
type NoRecordsError struct {
	Kind Kind
}

func (e *NoRecordsError) Error() string {
	return fmt.Sprintf("no %s found", e.Kind)
}

// PersistenceError reports a storage failure or a post-write consistency
// violation (a record that vanished between execute and reload). It is the
// only error kind logged at error severity by the HTTP layer.
type PersistenceError struct {
	Msg string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *PersistenceError) Unwrap() error { return e.Err }
