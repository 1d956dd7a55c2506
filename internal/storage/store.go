package storage

import (
	"context"

	countrymodels "roster/internal/country/models"
	personmodels "roster/internal/person/models"
	"roster/pkg/domain"
)

// CountryStore holds countries in insertion order. Absence is reported as
// sentinel.ErrNotFound and a name collision as sentinel.ErrAlreadyUsed.
type CountryStore interface {
	AddCountry(ctx context.Context, country *countrymodels.Country) error
	ListCountries(ctx context.Context) ([]*countrymodels.Country, error)
	GetCountryByID(ctx context.Context, id domain.CountryID) (*countrymodels.Country, error)
	GetCountryByName(ctx context.Context, name string) (*countrymodels.Country, error)
}

// PersonStore holds persons in insertion order. Reads return copies, so
// callers persist changes through UpdatePerson.
type PersonStore interface {
	AddPerson(ctx context.Context, person *personmodels.Person) error
	ListPersons(ctx context.Context) ([]*personmodels.Person, error)
	GetPersonByID(ctx context.Context, id domain.PersonID) (*personmodels.Person, error)
	UpdatePerson(ctx context.Context, person *personmodels.Person) error
	DeletePerson(ctx context.Context, id domain.PersonID) (bool, error)
}

// RecordStore is the one store both services share.
type RecordStore interface {
	CountryStore
	PersonStore
}

func clonePerson(p *personmodels.Person) *personmodels.Person {
	c := *p
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		c.DateOfBirth = &dob
	}
	return &c
}
