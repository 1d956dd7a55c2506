// Package domain holds the typed identifiers and small value types shared by
// the country and person modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "roster/pkg/domain-errors"
)

// CountryID identifies a Country. The zero value means "absent".
type CountryID uuid.UUID

// PersonID identifies a Person. The zero value means "absent".
type PersonID uuid.UUID

// NewCountryID issues a fresh identity.
func NewCountryID() CountryID { return CountryID(uuid.New()) }

// NewPersonID issues a fresh identity.
func NewPersonID() PersonID { return PersonID(uuid.New()) }

// ParseCountryID parses external input into a CountryID.
//
// Errors: returns CodeInvalidInput for empty, malformed or nil UUIDs.
func ParseCountryID(s string) (CountryID, error) {
	u, err := parseUUID(s, "country id")
	return CountryID(u), err
}

// ParsePersonID parses external input into a PersonID.
//
// Errors: returns CodeInvalidInput for empty, malformed or nil UUIDs.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person id")
	return PersonID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}

func (id CountryID) String() string { return uuid.UUID(id).String() }
func (id CountryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id PersonID) String() string { return uuid.UUID(id).String() }
func (id PersonID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText keeps JSON and form encodings as canonical UUID strings.
func (id CountryID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText accepts an empty string as the zero (absent) id.
func (id *CountryID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = CountryID{}
		return nil
	}
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = CountryID(u)
	return nil
}

func (id PersonID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *PersonID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = PersonID{}
		return nil
	}
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = PersonID(u)
	return nil
}
