package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"roster/internal/person/models"
)

// Sort returns persons ordered by field in the given direction.
//
// The sort is stable: persons with equal keys keep their input order in both
// directions. Strings compare case-insensitively; absent dates and ages sort
// lowest ascending; false sorts before true ascending. An unknown field
// returns persons unchanged (the same slice). Otherwise the result is a new
// slice and the input is left untouched.
func Sort(persons []models.PersonResponse, field models.Field, order models.SortOrder) []models.PersonResponse {
	compare := comparator(field)
	if compare == nil {
		return persons
	}
	if order == models.SortDESC {
		asc := compare
		compare = func(a, b models.PersonResponse) int { return asc(b, a) }
	}
	sorted := slices.Clone(persons)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(field models.Field) func(a, b models.PersonResponse) int {
	switch field {
	case models.FieldPersonName:
		return byString(func(p models.PersonResponse) string { return p.PersonName })
	case models.FieldEmail:
		return byString(func(p models.PersonResponse) string { return p.Email })
	case models.FieldGender:
		return byString(func(p models.PersonResponse) string { return p.Gender })
	case models.FieldCountry:
		return byString(func(p models.PersonResponse) string { return p.CountryName })
	case models.FieldAddress:
		return byString(func(p models.PersonResponse) string { return p.Address })
	case models.FieldDateOfBirth:
		return func(a, b models.PersonResponse) int { return compareTime(a.DateOfBirth, b.DateOfBirth) }
	case models.FieldAge:
		return func(a, b models.PersonResponse) int { return compareInt(a.Age, b.Age) }
	case models.FieldReceiveNewsLetters:
		return func(a, b models.PersonResponse) int {
			return compareBool(a.ReceiveNewsLetters, b.ReceiveNewsLetters)
		}
	default:
		return nil
	}
}

func byString(key func(models.PersonResponse) string) func(a, b models.PersonResponse) int {
	return func(a, b models.PersonResponse) int {
		return strings.Compare(strings.ToUpper(key(a)), strings.ToUpper(key(b)))
	}
}

func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func compareInt(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
