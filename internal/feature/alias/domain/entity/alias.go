// Package entity defines the domain models for the alias feature.
package entity

// Alias is one learned name-to-symbol mapping, owned by a user session.
// It is created or overwritten on every manual override or bulk-apply and
// consulted, never mutated, during resolution.
type Alias struct {
	Name   string `json:"name"`   // normalized (trimmed, lowercased) company name
	Symbol string `json:"symbol"` // canonical uppercase ticker chosen by the user
}
