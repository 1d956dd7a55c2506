package storage

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	countrymodels "roster/internal/country/models"
	personmodels "roster/internal/person/models"
	"roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

// recordStoreSuite is the behavior every RecordStore backend shares.
// Backends embed it and provide newStore.
type recordStoreSuite struct {
	suite.Suite
	newStore func() RecordStore
	store    RecordStore
	ctx      context.Context
}

func (s *recordStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *recordStoreSuite) addCountry(name string) *countrymodels.Country {
	c := &countrymodels.Country{ID: domain.NewCountryID(), Name: name}
	s.Require().NoError(s.store.AddCountry(s.ctx, c))
	return c
}

func (s *recordStoreSuite) addPerson(name string) *personmodels.Person {
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	p := &personmodels.Person{
		ID:                 domain.NewPersonID(),
		Name:               name,
		Email:              name + "@example.com",
		DateOfBirth:        &dob,
		Gender:             "Female",
		Address:            "1 Lake Road",
		ReceiveNewsLetters: true,
	}
	s.Require().NoError(s.store.AddPerson(s.ctx, p))
	return p
}

func (s *recordStoreSuite) TestCountries() {
	s.Run("lists in insertion order", func() {
		usa := s.addCountry("USA")
		japan := s.addCountry("Japan")

		got, err := s.store.ListCountries(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(usa, got[0])
		s.Equal(japan, got[1])
	})

	s.Run("finds by id and by exact name", func() {
		c := s.addCountry("Chile")

		byID, err := s.store.GetCountryByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(c, byID)

		byName, err := s.store.GetCountryByName(s.ctx, "Chile")
		s.Require().NoError(err)
		s.Equal(c, byName)

		_, err = s.store.GetCountryByName(s.ctx, "chile")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.GetCountryByID(s.ctx, domain.NewCountryID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *recordStoreSuite) TestPersons() {
	s.Run("round trips every field", func() {
		country := s.addCountry("Peru")
		dob := time.Date(1985, 11, 30, 0, 0, 0, 0, time.UTC)
		p := &personmodels.Person{
			ID:                 domain.NewPersonID(),
			Name:               "Rahman",
			Email:              "rahman@example.com",
			DateOfBirth:        &dob,
			Gender:             "Male",
			CountryID:          country.ID,
			Address:            "22 Hill Street",
			ReceiveNewsLetters: true,
		}
		s.Require().NoError(s.store.AddPerson(s.ctx, p))

		got, err := s.store.GetPersonByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.assertPerson(p, got)
	})

	s.Run("absent optional fields stay absent", func() {
		p := &personmodels.Person{ID: domain.NewPersonID(), Name: "Bare", Email: "bare@example.com"}
		s.Require().NoError(s.store.AddPerson(s.ctx, p))

		got, err := s.store.GetPersonByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Nil(got.DateOfBirth)
		s.True(got.CountryID.IsNil())
		s.Empty(got.Gender)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.GetPersonByID(s.ctx, domain.NewPersonID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *recordStoreSuite) TestListPersonsKeepsInsertionOrder() {
	a := s.addPerson("a")
	b := s.addPerson("b")
	c := s.addPerson("c")

	got, err := s.store.ListPersons(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal([]domain.PersonID{a.ID, b.ID, c.ID}, []domain.PersonID{got[0].ID, got[1].ID, got[2].ID})
}

func (s *recordStoreSuite) TestUpdatePerson() {
	s.Run("replaces every column and keeps position", func() {
		first := s.addPerson("first")
		second := s.addPerson("second")

		updated := &personmodels.Person{ID: first.ID, Name: "renamed", Email: "renamed@example.com"}
		s.Require().NoError(s.store.UpdatePerson(s.ctx, updated))

		got, err := s.store.GetPersonByID(s.ctx, first.ID)
		s.Require().NoError(err)
		s.assertPerson(updated, got)

		all, err := s.store.ListPersons(s.ctx)
		s.Require().NoError(err)
		s.Equal(first.ID, all[0].ID)
		s.Equal(second.ID, all[1].ID)
	})

	s.Run("unknown id is not found", func() {
		err := s.store.UpdatePerson(s.ctx, &personmodels.Person{ID: domain.NewPersonID(), Name: "x", Email: "x@example.com"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("reads are copies", func() {
		p := s.addPerson("copy")
		got, err := s.store.GetPersonByID(s.ctx, p.ID)
		s.Require().NoError(err)
		got.Name = "mutated"

		again, err := s.store.GetPersonByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("copy", again.Name)
	})
}

func (s *recordStoreSuite) TestDeletePerson() {
	p := s.addPerson("gone")

	deleted, err := s.store.DeletePerson(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.store.GetPersonByID(s.ctx, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	deleted, err = s.store.DeletePerson(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *recordStoreSuite) assertPerson(want, got *personmodels.Person) {
	s.Equal(want.ID, got.ID)
	s.Equal(want.Name, got.Name)
	s.Equal(want.Email, got.Email)
	s.Equal(want.Gender, got.Gender)
	s.Equal(want.CountryID, got.CountryID)
	s.Equal(want.Address, got.Address)
	s.Equal(want.ReceiveNewsLetters, got.ReceiveNewsLetters)
	if want.DateOfBirth == nil {
		s.Nil(got.DateOfBirth)
		return
	}
	s.Require().NotNil(got.DateOfBirth)
	s.True(want.DateOfBirth.Equal(*got.DateOfBirth), "date of birth %v != %v", want.DateOfBirth, got.DateOfBirth)
}
