package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/person/models"
	"roster/internal/person/service"
	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/httputil"
	"roster/pkg/requestcontext"
)

// Service defines the person operations the handler needs.
type Service interface {
	AddPerson(ctx context.Context, req *models.AddPersonRequest) (*models.PersonResponse, error)
	Query(ctx context.Context, params service.QueryParams) ([]models.PersonResponse, error)
	GetPersonByID(ctx context.Context, id domain.PersonID) (*models.PersonResponse, error)
	UpdatePerson(ctx context.Context, req *models.UpdatePersonRequest) (*models.PersonResponse, error)
	DeletePerson(ctx context.Context, id domain.PersonID) (bool, error)
}

// Handler serves the person endpoints.
type Handler struct {
	persons Service
	logger  *slog.Logger
}

func New(persons Service, logger *slog.Logger) *Handler {
	return &Handler{persons: persons, logger: logger}
}

// Register mounts the person routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/persons", h.handleQuery)
	r.Post("/persons", h.handleAdd)
	r.Get("/persons/search-fields", h.handleSearchFields)
	r.Get("/persons/{id}", h.handleGet)
	r.Put("/persons/{id}", h.handleUpdate)
	r.Delete("/persons/{id}", h.handleDelete)
}

// handleQuery lists persons filtered by searchBy/searchString and ordered by
// sortBy/sortOrder. Without sortBy the list is ordered by name ascending.
func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	persons, err := h.persons.Query(r.Context(), service.QueryParams{
		SearchBy:     q.Get("searchBy"),
		SearchString: q.Get("searchString"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    models.ParseSortOrder(q.Get("sortOrder")),
	})
	if err != nil {
		h.fail(w, r, "failed to query persons", err)
		return
	}
	if persons == nil {
		persons = []models.PersonResponse{}
	}
	httputil.WriteJSON(w, http.StatusOK, persons)
}

func (h *Handler) handleSearchFields(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.SearchFields)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req models.AddPersonRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid add person request", err)
		return
	}
	person, err := h.persons.AddPerson(r.Context(), &req)
	if err != nil {
		h.fail(w, r, "failed to add person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, person)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "invalid person id", err)
		return
	}
	person, err := h.persons.GetPersonByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to get person", err)
		return
	}
	if person == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

// updateBody accepts a PersonResponse as fetched, so the derived read-only
// fields are decoded and then ignored.
type updateBody struct {
	models.UpdatePersonRequest
	CountryName string `json:"country_name,omitempty"`
	Age         *int   `json:"age,omitempty"`
}

// handleUpdate takes the identity from the path. A body person_id that
// disagrees with the path is rejected.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "invalid person id", err)
		return
	}
	var body updateBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.fail(w, r, "invalid update person request", err)
		return
	}
	req := body.UpdatePersonRequest
	if !req.PersonID.IsNil() && req.PersonID != id {
		h.fail(w, r, "person id mismatch",
			dErrors.New(dErrors.CodeBadRequest, "person_id does not match the path"))
		return
	}
	req.PersonID = id

	person, err := h.persons.UpdatePerson(r.Context(), &req)
	if err != nil {
		h.fail(w, r, "failed to update person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "invalid person id", err)
		return
	}
	deleted, err := h.persons.DeletePerson(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to delete person", err)
		return
	}
	if !deleted {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err.Error(), "request_id", requestcontext.RequestID(ctx))
	} else {
		h.logger.WarnContext(ctx, msg, "error", err.Error(), "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
