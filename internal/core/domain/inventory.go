package domain

import (
	"errors"
	"fmt"
)

const (
	IdentifierLength = 8
	PrefixLength     = 2
)

var (
	ErrInvalidFormat = errors.New("invalid identifier format")
	ErrNotFound      = errors.New("inventory not found")
)

// InvalidFormatError reports the raw value that failed identifier validation.
type InvalidFormatError struct {
	Raw string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %q (expected 2 letters followed by 6 digits)", ErrInvalidFormat, e.Raw)
}

func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// Identifier is a validated inventory key: 2 ASCII letters + 6 ASCII digits.
// The only way to obtain a non-zero Identifier is ParseIdentifier.
type Identifier struct {
	raw string
}

func ParseIdentifier(raw string) (Identifier, error) {
	if !IsValidIdentifier(raw) {
		return Identifier{}, &InvalidFormatError{Raw: raw}
	}
	return Identifier{raw: raw}, nil
}

// LookupIdentifier is ParseIdentifier without the error, for callers that
// treat a malformed id as an ordinary miss.
func LookupIdentifier(raw string) (Identifier, bool) {
	if !IsValidIdentifier(raw) {
		return Identifier{}, false
	}
	return Identifier{raw: raw}, true
}

// IsValidIdentifier checks the format without allocating an error.
func IsValidIdentifier(raw string) bool {
	if len(raw) != IdentifierLength || !IsValidPrefix(raw[:PrefixLength]) {
		return false
	}
	for i := PrefixLength; i < IdentifierLength; i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// IsValidPrefix reports whether p is two ASCII letters.
func IsValidPrefix(p string) bool {
	return len(p) == PrefixLength && isASCIILetter(p[0]) && isASCIILetter(p[1])
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (id Identifier) String() string {
	return id.raw
}

// Prefix returns the shard key, or "" for the zero Identifier.
func (id Identifier) Prefix() string {
	if len(id.raw) < PrefixLength {
		return ""
	}
	return id.raw[:PrefixLength]
}

func (id Identifier) IsZero() bool {
	return id.raw == ""
}

// Inventory holds only immutable values, so copies never alias repository state.
type Inventory struct {
	ID   Identifier
	Name string
}

func NewInventory(rawID, name string) (Inventory, error) {
	id, err := ParseIdentifier(rawID)
	if err != nil {
		return Inventory{}, err
	}
	return Inventory{ID: id, Name: name}, nil
}
