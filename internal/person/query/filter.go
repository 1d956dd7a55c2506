// Package query holds the pure filter and sort dispatchers over person
// responses. Nothing here touches a store or mutates its input.
package query

import (
	"strings"

	"roster/internal/person/models"
)

// DateOfBirthLayout is the rendering a date-of-birth search matches against.
const DateOfBirthLayout = "02 January 2006"

// Filter keeps the persons whose field matches text.
//
// Matching is permissive: a person whose field value is empty passes. Text
// fields match on a case-insensitive substring, DateOfBirth on a substring of
// its DateOfBirthLayout rendering, Gender on case-insensitive equality, and
// FieldCountry on the resolved country name. An unknown or non-filterable
// field, or empty text, returns persons as given.
func Filter(persons []models.PersonResponse, field models.Field, text string) []models.PersonResponse {
	if text == "" || !field.Filterable() {
		return persons
	}
	match := matcher(field, text)
	matching := make([]models.PersonResponse, 0, len(persons))
	for i := range persons {
		if match(&persons[i]) {
			matching = append(matching, persons[i])
		}
	}
	return matching
}

func matcher(field models.Field, text string) func(*models.PersonResponse) bool {
	switch field {
	case models.FieldPersonName:
		return func(p *models.PersonResponse) bool { return containsFold(p.PersonName, text) }
	case models.FieldEmail:
		return func(p *models.PersonResponse) bool { return containsFold(p.Email, text) }
	case models.FieldAddress:
		return func(p *models.PersonResponse) bool { return containsFold(p.Address, text) }
	case models.FieldCountry:
		return func(p *models.PersonResponse) bool { return containsFold(p.CountryName, text) }
	case models.FieldDateOfBirth:
		return func(p *models.PersonResponse) bool {
			if p.DateOfBirth == nil {
				return true
			}
			return containsFold(p.DateOfBirth.Format(DateOfBirthLayout), text)
		}
	case models.FieldGender:
		return func(p *models.PersonResponse) bool {
			return p.Gender == "" || strings.EqualFold(p.Gender, text)
		}
	default:
		return func(*models.PersonResponse) bool { return true }
	}
}

// containsFold treats an empty value as a match.
func containsFold(value, text string) bool {
	if value == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(value), strings.ToUpper(text))
}
