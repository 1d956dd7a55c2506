package storage

import (
	"context"
	"slices"
	"sync"

	countrymodels "roster/internal/country/models"
	personmodels "roster/internal/person/models"
	"roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

// InMemory keeps countries and persons in insertion order behind one lock.
// It favors clarity over performance: lookups are linear scans.
//
// AddCountry does not enforce name uniqueness; the country service checks
// before inserting.
type InMemory struct {
	mu        sync.RWMutex
	countries []countrymodels.Country
	persons   []personmodels.Person
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) AddCountry(_ context.Context, country *countrymodels.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = append(s.countries, *country)
	return nil
}

func (s *InMemory) ListCountries(_ context.Context) ([]*countrymodels.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*countrymodels.Country, 0, len(s.countries))
	for i := range s.countries {
		c := s.countries[i]
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemory) GetCountryByID(_ context.Context, id domain.CountryID) (*countrymodels.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.countries, func(c countrymodels.Country) bool { return c.ID == id })
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	c := s.countries[i]
	return &c, nil
}

func (s *InMemory) GetCountryByName(_ context.Context, name string) (*countrymodels.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.countries, func(c countrymodels.Country) bool { return c.Name == name })
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	c := s.countries[i]
	return &c, nil
}

func (s *InMemory) AddPerson(_ context.Context, person *personmodels.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append(s.persons, *clonePerson(person))
	return nil
}

func (s *InMemory) ListPersons(_ context.Context) ([]*personmodels.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*personmodels.Person, 0, len(s.persons))
	for i := range s.persons {
		out = append(out, clonePerson(&s.persons[i]))
	}
	return out, nil
}

func (s *InMemory) GetPersonByID(_ context.Context, id domain.PersonID) (*personmodels.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.personIndex(id)
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	return clonePerson(&s.persons[i]), nil
}

// UpdatePerson replaces the stored record in place, keeping its position.
func (s *InMemory) UpdatePerson(_ context.Context, person *personmodels.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.personIndex(person.ID)
	if i < 0 {
		return sentinel.ErrNotFound
	}
	s.persons[i] = *clonePerson(person)
	return nil
}

func (s *InMemory) DeletePerson(_ context.Context, id domain.PersonID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.personIndex(id)
	if i < 0 {
		return false, nil
	}
	s.persons = slices.Delete(s.persons, i, i+1)
	return true, nil
}

func (s *InMemory) personIndex(id domain.PersonID) int {
	return slices.IndexFunc(s.persons, func(p personmodels.Person) bool { return p.ID == id })
}
