package models

import (
	"strings"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/validation"
)

// Country is a registered country.
//
// Invariants:
//   - ID is non-nil once created and never reassigned
//   - Name is non-blank; uniqueness is exact (case-sensitive) and enforced
//     at insertion time
type Country struct {
	ID   domain.CountryID `json:"country_id"`
	Name string           `json:"country_name"`
}

// NewCountry validates the name and constructs a country with the given id.
func NewCountry(countryID domain.CountryID, name string) (*Country, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country name cannot be blank")
	}
	if len(name) > validation.MaxCountryNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country name must be 100 characters or less")
	}
	return &Country{ID: countryID, Name: name}, nil
}

// AddCountryRequest is the add shape accepted by the transport layer.
type AddCountryRequest struct {
	CountryName string `json:"country_name"`
}
