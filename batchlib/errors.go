package batchlib

import (
	"errors"
)

var (
	ErrContextIsClosed     = errors.New("context is closed")
	ErrInternalConsistency = errors.New("internal consistency error")
	ErrReservedAddress     = errors.New("address belongs to a private or reserved range")
	ErrPoolClosed          = errors.New("worker pool is closed")
)

// FailureReason classifies why an address was not resolved.
type FailureReason uint8

const (
	InvalidAddress FailureReason = iota + 1
	NotFound
	DatabaseError
)

func (f FailureReason) String() string {
	switch f {
	case InvalidAddress:
		return "invalid_address"
	case NotFound:
		return "not_found"
	case DatabaseError:
		return "database_error"
	}

	return "unknown"
}

// LookupFailure is a per-address resolving error. It never aborts a
// batch and ends up in the output instead.
type LookupFailure struct {
	IP     string
	Reason FailureReason
	Err    error
}

func (l *LookupFailure) Unwrap() error {
	if l == nil {
		return nil
	}

	return l.Err
}

func (l *LookupFailure) Error() string {
	switch {
	case l == nil:
		return ""
	case l.Err != nil:
		return l.IP + ": " + l.Reason.String() + ": " + l.Err.Error()
	}

	return l.IP + ": " + l.Reason.String()
}

// ConfigurationError is a fatal error which happens before any lookup
// is done: unreadable input, missing databases, unwritable output.
type ConfigurationError struct {
	message string
	err     error
}

func (c *ConfigurationError) Message() string {
	if c == nil {
		return ""
	}

	return c.message
}

func (c *ConfigurationError) Unwrap() error {
	if c == nil {
		return nil
	}

	return c.err
}

func (c *ConfigurationError) Error() string {
	switch {
	case c == nil:
		return ""
	case c.err != nil && c.message != "":
		return c.message + ": " + c.err.Error()
	case c.err != nil:
		return c.err.Error()
	}

	return c.message
}

func NewConfigurationError(message string, err error) *ConfigurationError {
	return &ConfigurationError{
		message: message,
		err:     err,
	}
}

func asLookupFailure(raw string, err error) *LookupFailure {
	var failure *LookupFailure

	if errors.As(err, &failure) {
		return failure
	}

	return &LookupFailure{
		IP:     raw,
		Reason: DatabaseError,
		Err:    err,
	}
}
