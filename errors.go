package networth

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by secret stores when a requested secret
// does not exist.
var ErrNotFound = errors.New("not found")

// ConfigError reports a problem with the profile configuration. It is
// fatal: the run terminates before any aggregation happens.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Msg, e.Err)
	}
	return "config: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ServiceError reports a failure of a single price provider. It is
// non-fatal: the caller reports it and continues, and the provider's
// tokens degrade to native-unit-only reporting.
type ServiceError struct {
	Provider string
	Msg      string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Msg)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// InvalidValue reports a raw field value that could not be resolved.
// It carries the culprit (account and field) so the report can point at
// the exact entry; the holding is skipped and the run continues.
type InvalidValue struct {
	Account string
	Field   string
	Err     error
}

func (e *InvalidValue) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Account, e.Field, e.Err)
}

func (e *InvalidValue) Unwrap() error { return e.Err }
