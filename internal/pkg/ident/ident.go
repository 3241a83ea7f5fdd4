// Package ident issues prefixed, time-sortable identifiers for stored entities.
package ident

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix names the entity kind encoded in an identifier.
type Prefix string

const (
	PrefixUser          Prefix = "usr"
	PrefixOrder         Prefix = "ord"
	PrefixCollaboration Prefix = "collab"
)

// Generator produces identifiers for new records.
type Generator interface {
	New(prefix Prefix) (string, error)
}

// TypeIDGenerator issues UUIDv7 based TypeIDs such as "ord_01h2xcejqtf2nbrexx3vqjhp41".
type TypeIDGenerator struct{}

// NewGenerator constructs the default generator.
func NewGenerator() Generator {
	return TypeIDGenerator{}
}

// New generates an identifier with the given prefix.
func (TypeIDGenerator) New(prefix Prefix) (string, error) {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		return "", fmt.Errorf("ident: generate %q: %w", prefix, err)
	}
	return tid.String(), nil
}

// Validate checks that raw is a TypeID carrying the expected prefix.
func Validate(raw string, expected Prefix) error {
	if raw == "" {
		return fmt.Errorf("ident: empty identifier")
	}
	tid, err := typeid.Parse(raw)
	if err != nil {
		return fmt.Errorf("ident: parse %q: %w", raw, err)
	}
	if Prefix(tid.Prefix()) != expected {
		return fmt.Errorf("ident: expected prefix %q, got %q", expected, tid.Prefix())
	}
	return nil
}
