package model

import (
	"fmt"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// License is the usage tier purchased for a beat.
type License string

const (
	LicenseBasic     License = "basic"
	LicensePremium   License = "premium"
	LicenseExclusive License = "exclusive"
)

// ParseLicense validates raw license tier names.
func ParseLicense(raw string) (License, error) {
	l := License(raw)
	if !l.Valid() {
		return "", fmt.Errorf("%w: unknown license %q", domainErrors.ErrValidation, raw)
	}
	return l, nil
}

// Valid reports whether l is one of the known tiers.
func (l License) Valid() bool {
	switch l {
	case LicenseBasic, LicensePremium, LicenseExclusive:
		return true
	}
	return false
}

// Price applies the tier multiplier (1, 1.5, 3) to the base price.
// Premium rounds half a cent up.
func (l License) Price(base Money) Money {
	switch l {
	case LicensePremium:
		return (base*3 + 1) / 2
	case LicenseExclusive:
		return base * 3
	default:
		return base
	}
}

// LicenseSet holds per-tier availability flags of a beat.
type LicenseSet struct {
	Basic     bool
	Premium   bool
	Exclusive bool
}

// AllLicenses offers every tier.
func AllLicenses() LicenseSet {
	return LicenseSet{Basic: true, Premium: true, Exclusive: true}
}

// Allows reports whether the tier can be purchased.
func (s LicenseSet) Allows(l License) bool {
	switch l {
	case LicenseBasic:
		return s.Basic
	case LicensePremium:
		return s.Premium
	case LicenseExclusive:
		return s.Exclusive
	}
	return false
}
