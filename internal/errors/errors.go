package errors

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a referenced feed does not exist on a
// read or update path.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ForbiddenError is returned when a delete targets a feed that does not
// exist. Deletion of a missing resource is treated as a permission
// failure rather than an existence failure.
type ForbiddenError struct {
	Resource string
	ID       string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s delete forbidden: %s", e.Resource, e.ID)
}

// NotPersistedError wraps a durable write failure. Nothing from the
// failed operation is visible in the store.
type NotPersistedError struct {
	Op  string
	Err error
}

func (e *NotPersistedError) Error() string {
	return fmt.Sprintf("%s not persisted: %v", e.Op, e.Err)
}

func (e *NotPersistedError) Unwrap() error { return e.Err }

// PublishError wraps an event publish failure that happened after the
// durable write committed. It is logged and counted, never returned as
// the operation's overall failure.
type PublishError struct {
	Topic string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to %s failed: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// TimeoutError marks a store or publish call that ran past its
// configured deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsForbidden checks if an error is a ForbiddenError
func IsForbidden(err error) bool {
	var fb *ForbiddenError
	return errors.As(err, &fb)
}

// IsNotPersisted checks if an error is a NotPersistedError
func IsNotPersisted(err error) bool {
	var np *NotPersistedError
	return errors.As(err, &np)
}

// IsPublishFailure checks if an error is a PublishError
func IsPublishFailure(err error) bool {
	var pe *PublishError
	return errors.As(err, &pe)
}

// IsTimeout checks if an error is a TimeoutError
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
