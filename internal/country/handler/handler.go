package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/country/models"
	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/httputil"
	"roster/pkg/requestcontext"
)

// Service defines the country operations the handler needs.
type Service interface {
	AddCountry(ctx context.Context, name string) (*models.Country, error)
	ListCountries(ctx context.Context) ([]*models.Country, error)
	GetCountryByID(ctx context.Context, id domain.CountryID) (*models.Country, error)
}

// Handler serves the country endpoints.
type Handler struct {
	countries Service
	logger    *slog.Logger
}

func New(countries Service, logger *slog.Logger) *Handler {
	return &Handler{countries: countries, logger: logger}
}

// Register mounts the country routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/countries", h.handleList)
	r.Post("/countries", h.handleAdd)
	r.Get("/countries/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.ListCountries(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list countries", err)
		return
	}
	if countries == nil {
		countries = []*models.Country{}
	}
	httputil.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req models.AddCountryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid add country request", err)
		return
	}
	country, err := h.countries.AddCountry(r.Context(), req.CountryName)
	if err != nil {
		h.fail(w, r, "failed to add country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, country)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCountryID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "invalid country id", err)
		return
	}
	country, err := h.countries.GetCountryByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to get country", err)
		return
	}
	if country == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "country not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, country)
}

// fail logs client errors at warn and everything else at error, then renders.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
