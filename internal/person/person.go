// Package person is the person record engine: validated adds, field-keyed
// search and sort, full-replace updates and deletes.
package person

import (
	"roster/internal/person/handler"
	"roster/internal/person/models"
	"roster/internal/person/service"
)

type (
	Person         = models.Person
	PersonResponse = models.PersonResponse
	Service        = service.Service
	Handler        = handler.Handler
)

var (
	NewService = service.New
	NewHandler = handler.New
)
