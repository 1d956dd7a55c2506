package models

import (
	"time"

	"roster/pkg/domain"
)

// AddPersonRequest carries every mutable field; the identity is assigned by
// the service.
type AddPersonRequest struct {
	PersonName         string           `json:"person_name" validate:"required,notblank,max=40"`
	Email              string           `json:"email" validate:"required,email,max=40"`
	DateOfBirth        *time.Time       `json:"date_of_birth,omitempty"`
	Gender             domain.Gender    `json:"gender,omitempty" validate:"omitempty,gender"`
	CountryID          domain.CountryID `json:"country_id,omitempty"`
	Address            string           `json:"address,omitempty" validate:"max=200"`
	ReceiveNewsLetters bool             `json:"receive_news_letters"`
}

// ToPerson builds the stored record. Gender is normalized to its text form.
func (r *AddPersonRequest) ToPerson(personID domain.PersonID) *Person {
	return &Person{
		ID:                 personID,
		Name:               r.PersonName,
		Email:              r.Email,
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender.String(),
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}

// UpdatePersonRequest carries the identity of an existing record plus every
// mutable field. Fields left at their zero value reset the stored value.
type UpdatePersonRequest struct {
	PersonID           domain.PersonID  `json:"person_id"`
	PersonName         string           `json:"person_name" validate:"required,notblank,max=40"`
	Email              string           `json:"email" validate:"required,email,max=40"`
	DateOfBirth        *time.Time       `json:"date_of_birth,omitempty"`
	Gender             domain.Gender    `json:"gender,omitempty" validate:"omitempty,gender"`
	CountryID          domain.CountryID `json:"country_id,omitempty"`
	Address            string           `json:"address,omitempty" validate:"max=200"`
	ReceiveNewsLetters bool             `json:"receive_news_letters"`
}

// PersonResponse is the read shape: stored fields plus the derived Age and
// the denormalized CountryName ("" when the country does not resolve).
type PersonResponse struct {
	PersonID           domain.PersonID  `json:"person_id"`
	PersonName         string           `json:"person_name"`
	Email              string           `json:"email"`
	DateOfBirth        *time.Time       `json:"date_of_birth,omitempty"`
	Gender             string           `json:"gender,omitempty"`
	CountryID          domain.CountryID `json:"country_id"`
	CountryName        string           `json:"country_name,omitempty"`
	Address            string           `json:"address,omitempty"`
	ReceiveNewsLetters bool             `json:"receive_news_letters"`
	Age                *int             `json:"age,omitempty"`
}

// ToUpdateRequest prefills an update from a read, as an edit form does.
func (r PersonResponse) ToUpdateRequest() *UpdatePersonRequest {
	return &UpdatePersonRequest{
		PersonID:           r.PersonID,
		PersonName:         r.PersonName,
		Email:              r.Email,
		DateOfBirth:        r.DateOfBirth,
		Gender:             domain.Gender(r.Gender),
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}
