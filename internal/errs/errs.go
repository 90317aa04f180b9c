// Package errs provides error wrapping helpers and the failure taxonomy the
// check workflow reports on: fetch, store, and delivery errors. None of them
// is fatal to the process; the scheduler always gets another tick.
package errs

import (
	"errors"
	"fmt"
)

// Wrap adds context and preserves the error chain (errors.Is/As works).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	// Append the original err as the last arg for %w.
	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}

// FetchError marks a source fetch or parse failure. The run fails, a
// counter is bumped, and the next tick retries.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// Fetch wraps err as a FetchError, or returns nil for nil.
func Fetch(err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Err: err}
}

// IsFetch reports whether any error in the chain is a FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// StoreError marks a persistence failure. The current run aborts with the
// previously-known state intact.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError, or returns nil for nil.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

// IsStore reports whether any error in the chain is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// DeliveryError marks a failed announcement for a single event. Sibling
// events in the same batch still get delivered.
type DeliveryError struct {
	Notifier string
	Err      error
}

func (e *DeliveryError) Error() string {
	if e.Notifier != "" {
		return fmt.Sprintf("delivery via %s: %s", e.Notifier, e.Err.Error())
	}
	return "delivery: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Delivery wraps err as a DeliveryError for the named notifier, or returns
// nil for nil.
func Delivery(notifier string, err error) error {
	if err == nil {
		return nil
	}
	return &DeliveryError{Notifier: notifier, Err: err}
}

// IsDelivery reports whether any error in the chain is a DeliveryError.
func IsDelivery(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de)
}
