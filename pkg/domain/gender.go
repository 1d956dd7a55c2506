package domain

import (
	"strings"

	dErrors "roster/pkg/domain-errors"
)

// Gender is the closed set of gender values a person may carry. It is stored
// as its text form; the empty value means "not given".
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

var validGenders = map[string]Gender{
	"male":   GenderMale,
	"female": GenderFemale,
	"other":  GenderOther,
}

// ParseGender normalizes external input to its canonical text form. Matching
// is case-insensitive. An empty string parses to the empty Gender.
//
// Errors: returns CodeInvalidInput for values outside the enumeration.
func ParseGender(s string) (Gender, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	g, ok := validGenders[strings.ToLower(s)]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid gender")
	}
	return g, nil
}

// IsValid reports whether g is empty or one of the enumerated values.
func (g Gender) IsValid() bool {
	_, err := ParseGender(string(g))
	return err == nil
}

// String returns the stored text form. Unrecognized values normalize to "".
func (g Gender) String() string {
	n, err := ParseGender(string(g))
	if err != nil {
		return ""
	}
	return string(n)
}
