package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Authenticate when the username is
// unknown or the password does not match. Callers must not learn which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError reports a lookup for an entity that does not exist.
// EntityID is the id the caller asked for.
type NotFoundError struct {
	EntityName string
	EntityID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.EntityName, e.EntityID)
}

// DuplicateError reports a write that collides with an existing entity.
// EntityID carries the colliding value (a username, email or user id).
type DuplicateError struct {
	EntityName string
	EntityID   any
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %v", e.EntityName, e.EntityID)
}

// PermissionError reports an action the caller is not allowed to perform
// on an entity it can otherwise see.
type PermissionError struct {
	Action     string
	EntityName string
	EntityID   any
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("no permission to %s %s %v", e.Action, e.EntityName, e.EntityID)
}
