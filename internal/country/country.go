// Package country is the country registry: a list of uniquely named
// countries that persons reference by id.
package country

import (
	"roster/internal/country/handler"
	"roster/internal/country/models"
	"roster/internal/country/service"
)

type (
	Country = models.Country
	Service = service.Service
	Handler = handler.Handler
)

var (
	NewService = service.New
	NewHandler = handler.New
)
