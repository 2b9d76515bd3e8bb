package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a search key matches no card in a pool.
	ErrNotFound = errors.New("card not found")

	// ErrAmbiguousKey is returned when a key matches more than one card
	// but a single result was required.
	ErrAmbiguousKey = errors.New("search key not narrow enough")
)

// DuplicateIDError is returned when a card with an already-present
// catalog id is added to a Set.
type DuplicateIDError struct {
	SetName   string
	CatalogID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("set %q already has catalog id %d", e.SetName, e.CatalogID)
}

// IdentityConflictError reports an instance id that was claimed for two
// different catalog ids. This is an upstream protocol violation; callers
// should abort processing of the offending event.
type IdentityConflictError struct {
	InstanceID int
	ClaimedID  int
	ResolvedID int
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("instance %d claimed for catalog id %d but already resolved to %d",
		e.InstanceID, e.ClaimedID, e.ResolvedID)
}
