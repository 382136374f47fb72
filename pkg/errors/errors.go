package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError indicates a requested record does not exist.
type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewCarNotFoundError(id string) error {
	return &ResourceNotFoundError{Resource: "car", ID: id}
}

func NewSaleNotFoundError(id string) error {
	return &ResourceNotFoundError{Resource: "sale", ID: id}
}

func NewModelNotFoundError(id string) error {
	return &ResourceNotFoundError{Resource: "model", ID: id}
}

func NewBrandNotFoundError(id string) error {
	return &ResourceNotFoundError{Resource: "brand", ID: id}
}

func NewBodyTypeNotFoundError(id string) error {
	return &ResourceNotFoundError{Resource: "body type", ID: id}
}

func NewUserNotFoundError(email string) error {
	return &ResourceNotFoundError{Resource: "user", ID: email}
}

func IsResourceNotFoundError(err error) bool {
	var nf *ResourceNotFoundError
	return errors.As(err, &nf)
}

// ValidationError indicates a request was rejected before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewMissingFieldError(field string) error {
	return &ValidationError{Field: field, Reason: "required field is missing"}
}

func NewOutOfRangeError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NewImmutableFieldError(field string) error {
	return &ValidationError{Field: field, Reason: "cannot be changed"}
}

// NewNoChangesError rejects an edit submission whose fields all match the
// stored record.
func NewNoChangesError() error {
	return &ValidationError{Field: "form", Reason: "no fields changed"}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// EntityCreateError tags a reference-data creation failure with the entity
// that failed. Earlier steps of the same resolution may have succeeded and
// are not rolled back.
type EntityCreateError struct {
	Entity string
	Err    error
}

func (e *EntityCreateError) Error() string {
	return fmt.Sprintf("failed to create %s: %v", e.Entity, e.Err)
}

func (e *EntityCreateError) Unwrap() error {
	return e.Err
}

func NewEntityCreateError(entity string, err error) error {
	return &EntityCreateError{Entity: entity, Err: err}
}

func IsEntityCreateError(err error) bool {
	var c *EntityCreateError
	return errors.As(err, &c)
}

// UnauthorizedError indicates a missing, expired or revoked session.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

func IsUnauthorizedError(err error) bool {
	var u *UnauthorizedError
	return errors.As(err, &u)
}

// UserNotRegisteredError is returned by the OAuth callback when the Google
// account's email has no pre-registered user.
type UserNotRegisteredError struct {
	Email string
}

func (e *UserNotRegisteredError) Error() string {
	return fmt.Sprintf("user %q is not registered", e.Email)
}

func NewUserNotRegisteredError(email string) error {
	return &UserNotRegisteredError{Email: email}
}

func IsUserNotRegisteredError(err error) bool {
	var u *UserNotRegisteredError
	return errors.As(err, &u)
}
