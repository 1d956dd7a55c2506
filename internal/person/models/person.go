package models

import (
	"math"
	"time"

	"roster/pkg/domain"
)

// Person is the stored person record.
//
// Invariants:
//   - ID is non-nil once created and never reassigned, including by updates
//   - Name and Email are validated at the request boundary, not here
//   - Gender holds the canonical text form or "" when not given
//   - CountryID is a back-reference only; the zero value means "no country"
type Person struct {
	ID                 domain.PersonID  `json:"person_id"`
	Name               string           `json:"person_name"`
	Email              string           `json:"email"`
	DateOfBirth        *time.Time       `json:"date_of_birth,omitempty"`
	Gender             string           `json:"gender"`
	CountryID          domain.CountryID `json:"country_id"`
	Address            string           `json:"address"`
	ReceiveNewsLetters bool             `json:"receive_news_letters"`
}

// ApplyUpdate overlays every mutable field of req onto p. This is a
// full-replace merge: a zero value on the request overwrites the stored value.
// The identity is never written.
func (p *Person) ApplyUpdate(req *UpdatePersonRequest) {
	p.Name = req.PersonName
	p.Email = req.Email
	p.DateOfBirth = req.DateOfBirth
	p.Gender = req.Gender.String()
	p.CountryID = req.CountryID
	p.Address = req.Address
	p.ReceiveNewsLetters = req.ReceiveNewsLetters
}

// ToResponse maps the record to its response shape, deriving Age against now
// and carrying the already-resolved country name.
func (p *Person) ToResponse(now time.Time, countryName string) PersonResponse {
	return PersonResponse{
		PersonID:           p.ID,
		PersonName:         p.Name,
		Email:              p.Email,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		CountryID:          p.CountryID,
		CountryName:        countryName,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
		Age:                AgeAt(p.DateOfBirth, now),
	}
}

// AgeAt returns whole years between dob and now, rounded over 365.25-day
// years. It returns nil when dob is nil.
func AgeAt(dob *time.Time, now time.Time) *int {
	if dob == nil {
		return nil
	}
	days := now.Sub(*dob).Hours() / 24
	age := int(math.Round(days / 365.25))
	return &age
}
