package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"roster/internal/audit"
	countrymodels "roster/internal/country/models"
	"roster/internal/person/models"
	"roster/internal/person/query"
	"roster/internal/platform/metrics"
	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
	"roster/pkg/platform/validation"
	"roster/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,CountryResolver,AuditPublisher

// Store is the person half of the record store. Reads return copies the
// caller may mutate.
type Store interface {
	AddPerson(ctx context.Context, person *models.Person) error
	ListPersons(ctx context.Context) ([]*models.Person, error)
	GetPersonByID(ctx context.Context, id domain.PersonID) (*models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error
	DeletePerson(ctx context.Context, id domain.PersonID) (bool, error)
}

// CountryResolver resolves country names for responses. GetCountryByID
// returns nil, nil for unresolved ids.
type CountryResolver interface {
	GetCountryByID(ctx context.Context, id domain.CountryID) (*countrymodels.Country, error)
	ListCountries(ctx context.Context) ([]*countrymodels.Country, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, action audit.Action, subject string)
}

var tracer = otel.Tracer("roster/internal/person/service")

// Service is the person record engine: add, query (filter and sort), full
// replace update and delete, with country names joined at read time.
type Service struct {
	store          Store
	countries      CountryResolver
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, countries CountryResolver, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("person store is required")
	}
	if countries == nil {
		return nil, errors.New("country resolver is required")
	}
	s := &Service{store: store, countries: countries}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddPerson validates the request, stores a new record under a fresh id and
// returns its response form. The country is resolved before the insert, so a
// failed lookup leaves nothing stored.
//
// Errors: CodeValidation for a missing request, blank name or a blank or
// malformed email; CodeInternal on store failure.
func (s *Service) AddPerson(ctx context.Context, req *models.AddPersonRequest) (*models.PersonResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "person.AddPerson")
	defer span.End()
	defer s.metrics.ObserveOperation("add_person", start)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	person := req.ToPerson(domain.NewPersonID())
	countryName, err := s.countryName(ctx, person.CountryID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddPerson(ctx, person); err != nil {
		span.SetStatus(codes.Error, "insert failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add person")
	}
	span.SetAttributes(attribute.String("person_id", person.ID.String()))

	resp := person.ToResponse(requestcontext.Now(ctx), countryName)
	s.logAudit(ctx, audit.ActionPersonAdded, person.ID.String())
	s.metrics.IncrementPersonsAdded()
	return &resp, nil
}

// ListPersons returns every person in insertion order with country names
// resolved. Persons and countries are fetched concurrently.
func (s *Service) ListPersons(ctx context.Context) ([]models.PersonResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "person.ListPersons")
	defer span.End()
	defer s.metrics.ObserveOperation("list_persons", start)

	var (
		persons   []*models.Person
		countries []*countrymodels.Country
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persons, err = s.store.ListPersons(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		countries, err = s.countries.ListCountries(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list countries")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, "list failed")
		return nil, err
	}

	names := make(map[domain.CountryID]string, len(countries))
	for _, c := range countries {
		names[c.ID] = c.Name
	}
	now := requestcontext.Now(ctx)
	responses := make([]models.PersonResponse, 0, len(persons))
	for _, p := range persons {
		responses = append(responses, p.ToResponse(now, names[p.CountryID]))
	}
	span.SetAttributes(attribute.Int("person_count", len(responses)))
	return responses, nil
}

// GetPersonByID returns the person or nil when id is zero or unknown.
// Absence is not an error.
func (s *Service) GetPersonByID(ctx context.Context, id domain.PersonID) (*models.PersonResponse, error) {
	if id.IsNil() {
		return nil, nil
	}
	ctx, span := tracer.Start(ctx, "person.GetPersonByID")
	defer span.End()

	person, err := s.store.GetPersonByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		span.SetStatus(codes.Error, "lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get person")
	}
	return s.respond(ctx, person)
}

// FilterPersons lists every person and keeps those matching searchString on
// the searchBy field. An empty or unknown searchBy, or an empty
// searchString, returns the full list.
func (s *Service) FilterPersons(ctx context.Context, searchBy, searchString string) ([]models.PersonResponse, error) {
	all, err := s.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, models.ParseField(searchBy), searchString), nil
}

// SortPersons orders persons by the sortBy field. An empty or unknown sortBy
// returns persons unchanged.
func (s *Service) SortPersons(persons []models.PersonResponse, sortBy string, order models.SortOrder) []models.PersonResponse {
	return query.Sort(persons, models.ParseField(sortBy), order)
}

// QueryParams is a combined search and sort request.
type QueryParams struct {
	SearchBy     string
	SearchString string
	SortBy       string
	SortOrder    models.SortOrder
}

// DefaultSortBy is the sort field a listing uses when none is requested.
const DefaultSortBy = "PersonName"

// Query filters then sorts. An empty SortBy falls back to DefaultSortBy and
// an empty SortOrder to ascending.
func (s *Service) Query(ctx context.Context, params QueryParams) ([]models.PersonResponse, error) {
	if params.SortBy == "" {
		params.SortBy = DefaultSortBy
	}
	if params.SortOrder == "" {
		params.SortOrder = models.SortASC
	}
	filtered, err := s.FilterPersons(ctx, params.SearchBy, params.SearchString)
	if err != nil {
		return nil, err
	}
	return s.SortPersons(filtered, params.SortBy, params.SortOrder), nil
}

// UpdatePerson replaces every mutable field of an existing record with the
// request's values. The identity is preserved.
//
// Errors: CodeValidation for a missing request, a zero PersonID, a blank name
// or a blank or malformed email; CodeNotFound when no record has PersonID;
// CodeInternal on store failure.
func (s *Service) UpdatePerson(ctx context.Context, req *models.UpdatePersonRequest) (*models.PersonResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "person.UpdatePerson")
	defer span.End()
	defer s.metrics.ObserveOperation("update_person", start)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.PersonID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "person_id cannot be blank")
	}
	span.SetAttributes(attribute.String("person_id", req.PersonID.String()))

	person, err := s.store.GetPersonByID(ctx, req.PersonID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "given person id doesn't exist")
		}
		span.SetStatus(codes.Error, "lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get person")
	}

	person.ApplyUpdate(req)
	countryName, err := s.countryName(ctx, person.CountryID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePerson(ctx, person); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "given person id doesn't exist")
		}
		span.SetStatus(codes.Error, "update failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update person")
	}

	resp := person.ToResponse(requestcontext.Now(ctx), countryName)
	s.logAudit(ctx, audit.ActionPersonUpdated, person.ID.String())
	return &resp, nil
}

// DeletePerson removes the record and reports whether one existed.
//
// Errors: CodeValidation for a zero id; CodeInternal on store failure.
func (s *Service) DeletePerson(ctx context.Context, id domain.PersonID) (bool, error) {
	if id.IsNil() {
		return false, dErrors.New(dErrors.CodeValidation, "person_id cannot be blank")
	}
	ctx, span := tracer.Start(ctx, "person.DeletePerson")
	defer span.End()

	deleted, err := s.store.DeletePerson(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "delete failed")
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete person")
	}
	if deleted {
		s.logAudit(ctx, audit.ActionPersonDeleted, id.String())
		s.metrics.IncrementPersonsDeleted()
	}
	return deleted, nil
}

// respond resolves the person's country and builds its response.
func (s *Service) respond(ctx context.Context, person *models.Person) (*models.PersonResponse, error) {
	countryName, err := s.countryName(ctx, person.CountryID)
	if err != nil {
		return nil, err
	}
	resp := person.ToResponse(requestcontext.Now(ctx), countryName)
	return &resp, nil
}

// countryName is empty for a zero or unresolved id.
func (s *Service) countryName(ctx context.Context, id domain.CountryID) (string, error) {
	country, err := s.countries.GetCountryByID(ctx, id)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve country")
	}
	if country == nil {
		return "", nil
	}
	return country.Name, nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, subject string, attributes ...any) {
	if s.logger != nil {
		args := append(attributes,
			"event", string(action),
			"subject", subject,
			"log_type", "audit",
		)
		if requestID := requestcontext.RequestID(ctx); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		s.logger.InfoContext(ctx, string(action), args...)
	}
	if s.auditPublisher != nil {
		s.auditPublisher.Emit(ctx, action, subject)
	}
}
