package models

import "strings"

// Field is the closed set of person fields a caller may filter or sort by.
type Field int

const (
	// FieldUnknown is any key outside the set. Filtering and sorting on it
	// leave the list untouched.
	FieldUnknown Field = iota
	FieldPersonName
	FieldEmail
	FieldDateOfBirth
	FieldGender
	// FieldCountry is keyed "CountryID" but compares the resolved country name.
	FieldCountry
	FieldAddress
	FieldReceiveNewsLetters
	FieldAge
)

var fieldKeys = map[string]Field{
	"PersonName":         FieldPersonName,
	"Email":              FieldEmail,
	"DateOfBirth":        FieldDateOfBirth,
	"Gender":             FieldGender,
	"CountryID":          FieldCountry,
	"CountryName":        FieldCountry,
	"Address":            FieldAddress,
	"ReceiveNewsLetters": FieldReceiveNewsLetters,
	"Age":                FieldAge,
}

// ParseField maps a caller-supplied key to a Field. Keys are case-sensitive.
func ParseField(key string) Field {
	return fieldKeys[key]
}

func (f Field) String() string {
	switch f {
	case FieldPersonName:
		return "PersonName"
	case FieldEmail:
		return "Email"
	case FieldDateOfBirth:
		return "DateOfBirth"
	case FieldGender:
		return "Gender"
	case FieldCountry:
		return "CountryID"
	case FieldAddress:
		return "Address"
	case FieldReceiveNewsLetters:
		return "ReceiveNewsLetters"
	case FieldAge:
		return "Age"
	default:
		return ""
	}
}

// Filterable reports whether the field takes part in text search.
func (f Field) Filterable() bool {
	switch f {
	case FieldPersonName, FieldEmail, FieldDateOfBirth, FieldGender, FieldCountry, FieldAddress:
		return true
	default:
		return false
	}
}

// SearchFields lists the filterable keys with their display labels, in the
// order a search form presents them.
var SearchFields = []struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}{
	{"PersonName", "Person Name"},
	{"Email", "Email"},
	{"DateOfBirth", "Date of Birth"},
	{"Gender", "Gender"},
	{"CountryID", "Country"},
	{"Address", "Address"},
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortASC  SortOrder = "ASC"
	SortDESC SortOrder = "DESC"
)

// ParseSortOrder accepts ASC/DESC and Ascending/Descending in any case.
// Anything else is ascending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DESC", "DESCENDING":
		return SortDESC
	default:
		return SortASC
	}
}
