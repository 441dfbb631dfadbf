package types

import (
	"errors"
	"fmt"
)

// MaxNameLength is the longest account name accepted by the ledger.
const MaxNameLength = 12

const nameCharset = ".12345abcdefghijklmnopqrstuvwxyz"

// ErrInvalidName is returned by ParseName for malformed account names.
var ErrInvalidName = errors.New("types: invalid account name")

// Name identifies an account. Valid names are 1 to 12 characters drawn from
// ".12345a-z" and never end with a dot.
type Name string

// ParseName validates s and returns it as a Name.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return n, nil
}

// MustName is like ParseName but panics on error. Use for hardcoded names.
func MustName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsValid reports whether n is a well-formed account name.
func (n Name) IsValid() bool {
	if len(n) == 0 || len(n) > MaxNameLength {
		return false
	}
	if n[len(n)-1] == '.' {
		return false
	}
	for i := 0; i < len(n); i++ {
		if !isNameChar(n[i]) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether n is the zero value.
func (n Name) IsEmpty() bool { return n == "" }

func (n Name) String() string { return string(n) }

func isNameChar(c byte) bool {
	for i := 0; i < len(nameCharset); i++ {
		if nameCharset[i] == c {
			return true
		}
	}
	return false
}
