package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

type sample struct {
	Name    string        `json:"person_name" validate:"required,notblank,max=40"`
	Email   string        `json:"email" validate:"required,email,max=40"`
	Gender  domain.Gender `json:"gender" validate:"omitempty,gender"`
	Address string        `json:"address" validate:"max=200"`
}

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) valid() *sample {
	return &sample{Name: "Marko", Email: "marko@example.com", Gender: domain.GenderMale}
}

func (s *ValidationSuite) TestRequiredFields() {
	s.Run("valid request passes", func() {
		s.NoError(Struct(s.valid()))
	})

	s.Run("missing name rejected", func() {
		req := s.valid()
		req.Name = ""
		err := Struct(req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "person_name cannot be blank")
	})

	s.Run("whitespace-only name rejected", func() {
		req := s.valid()
		req.Name = " \t\n "
		err := Struct(req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "person_name cannot be blank")
	})

	s.Run("name with inner spaces passes", func() {
		req := s.valid()
		req.Name = " Marko Polo "
		s.NoError(Struct(req))
	})

	s.Run("nil request rejected", func() {
		var req *sample
		err := Struct(req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ValidationSuite) TestFormats() {
	s.Run("malformed email rejected", func() {
		req := s.valid()
		req.Email = "not-an-email"
		err := Struct(req)
		s.Require().Error(err)
		s.Contains(err.Error(), "email should be a valid email")
	})

	s.Run("address at max length allowed", func() {
		req := s.valid()
		req.Address = strings.Repeat("a", MaxAddressLength)
		s.NoError(Struct(req))
	})

	s.Run("address over max length rejected", func() {
		req := s.valid()
		req.Address = strings.Repeat("a", MaxAddressLength+1)
		err := Struct(req)
		s.Require().Error(err)
		s.Contains(err.Error(), "address exceeds max length 200")
	})

	s.Run("unknown gender rejected", func() {
		req := s.valid()
		req.Gender = "robot"
		err := Struct(req)
		s.Require().Error(err)
		s.Contains(err.Error(), "gender must be one of")
	})

	s.Run("empty gender allowed", func() {
		req := s.valid()
		req.Gender = ""
		s.NoError(Struct(req))
	})
}
