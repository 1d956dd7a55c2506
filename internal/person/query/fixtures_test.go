package query

import (
	"time"

	"roster/internal/person/models"
	"roster/pkg/domain"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(v int) *int { return &v }

func person(name string, mutate ...func(*models.PersonResponse)) models.PersonResponse {
	p := models.PersonResponse{
		PersonID:   domain.NewPersonID(),
		PersonName: name,
	}
	for _, m := range mutate {
		m(&p)
	}
	return p
}

func names(persons []models.PersonResponse) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.PersonName
	}
	return out
}
