package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"roster/internal/audit"
	"roster/internal/country/models"
	"roster/internal/platform/metrics"
	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
	liststr "roster/pkg/platform/strings"
	"roster/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

// Store is the country half of the record store.
type Store interface {
	AddCountry(ctx context.Context, country *models.Country) error
	ListCountries(ctx context.Context) ([]*models.Country, error)
	GetCountryByID(ctx context.Context, id domain.CountryID) (*models.Country, error)
	GetCountryByName(ctx context.Context, name string) (*models.Country, error)
}

// AuditPublisher receives lifecycle events. Emit never fails the caller.
type AuditPublisher interface {
	Emit(ctx context.Context, action audit.Action, subject string)
}

var tracer = otel.Tracer("roster/internal/country/service")

// Service registers and looks up countries.
type Service struct {
	store          Store
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

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("country store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddCountry registers a country under a fresh id.
//
// The name is stored as given. A whitespace-only name is blank; any other
// name is compared byte for byte, so " USA" and "USA" are distinct.
//
// Errors: CodeValidation for a blank name, CodeConflict when the exact name is
// already registered, CodeInternal on store failure.
func (s *Service) AddCountry(ctx context.Context, name string) (*models.Country, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "country.AddCountry")
	defer span.End()
	defer s.metrics.ObserveOperation("add_country", start)

	country, err := models.NewCountry(domain.NewCountryID(), name)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	existing, err := s.store.GetCountryByName(ctx, name)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		span.SetStatus(codes.Error, "lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up country")
	}
	if existing != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "given country name already exists")
	}

	if err := s.store.AddCountry(ctx, country); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "given country name already exists")
		}
		span.SetStatus(codes.Error, "insert failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add country")
	}
	span.SetAttributes(attribute.String("country_id", country.ID.String()))

	s.logAudit(ctx, audit.ActionCountryAdded, country.ID.String(), "country_name", country.Name)
	s.metrics.IncrementCountriesAdded()
	return country, nil
}

// ListCountries returns every country in insertion order.
func (s *Service) ListCountries(ctx context.Context) ([]*models.Country, error) {
	ctx, span := tracer.Start(ctx, "country.ListCountries")
	defer span.End()

	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "list failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list countries")
	}
	return countries, nil
}

// GetCountryByID returns the country or nil when id is zero or unknown.
// Absence is not an error.
func (s *Service) GetCountryByID(ctx context.Context, id domain.CountryID) (*models.Country, error) {
	if id.IsNil() {
		return nil, nil
	}
	ctx, span := tracer.Start(ctx, "country.GetCountryByID")
	defer span.End()

	country, err := s.store.GetCountryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		span.SetStatus(codes.Error, "lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get country")
	}
	return country, nil
}

// SeedCountries registers each name that is not already present. Blank names
// and duplicates are skipped; any other failure aborts the seed.
func (s *Service) SeedCountries(ctx context.Context, names []string) (int, error) {
	added := 0
	for _, name := range liststr.DedupeAndTrim(names) {
		if _, err := s.AddCountry(ctx, name); err != nil {
			if dErrors.HasCode(err, dErrors.CodeConflict) {
				continue
			}
			return added, err
		}
		added++
	}
	if s.logger != nil && added > 0 {
		s.logger.InfoContext(ctx, "seeded countries", "count", added)
	}
	return added, nil
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
