// Package usecase implements the business logic for learned aliases.
package usecase

import "errors"

var (
	// ErrAliasNotFound is returned when no alias exists for a normalized name.
	ErrAliasNotFound = errors.New("alias not found")

	// ErrEmptySymbol is returned when an override is recorded with a blank symbol.
	ErrEmptySymbol = errors.New("alias symbol must not be empty")

	// ErrEmptyName is returned when an override is recorded with a blank name.
	ErrEmptyName = errors.New("alias name must not be empty")
)
