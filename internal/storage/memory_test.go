package storage

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	recordStoreSuite
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &InMemoryStoreSuite{
		recordStoreSuite: recordStoreSuite{
			newStore: func() RecordStore { return NewInMemory() },
		},
	})
}

// The in-memory backend leaves name uniqueness to the country service.
func (s *InMemoryStoreSuite) TestAddCountryDoesNotEnforceUniqueness() {
	s.addCountry("USA")
	s.addCountry("USA")

	got, err := s.store.ListCountries(s.ctx)
	s.Require().NoError(err)
	s.Len(got, 2)
}
