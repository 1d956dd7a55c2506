package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	countryservice "roster/internal/country/service"
	"roster/internal/person/models"
	"roster/internal/person/service"
	"roster/internal/storage"
	"roster/pkg/domain"
	"roster/pkg/testutil"
)

type fixture struct {
	router    http.Handler
	countries *countryservice.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := storage.NewInMemory()
	countries, err := countryservice.New(store)
	require.NoError(t, err)
	persons, err := service.New(store, countries)
	require.NoError(t, err)

	r := chi.NewRouter()
	New(persons, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return fixture{router: r, countries: countries}
}

func (f fixture) add(t *testing.T, req models.AddPersonRequest) models.PersonResponse {
	t.Helper()
	rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/persons", req))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.Decode[models.PersonResponse](t, rr)
}

func TestAddPerson(t *testing.T) {
	f := newFixture(t)

	t.Run("created with derived fields", func(t *testing.T) {
		dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
		got := f.add(t, models.AddPersonRequest{
			PersonName:  "Smith",
			Email:       "smith@example.com",
			DateOfBirth: &dob,
			Gender:      domain.GenderMale,
		})
		assert.False(t, got.PersonID.IsNil())
		assert.NotNil(t, got.Age)
		assert.Equal(t, "Male", got.Gender)
	})

	t.Run("invalid email is 400", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/persons",
			models.AddPersonRequest{PersonName: "Smith", Email: "nope"}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("unknown field is 400", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewRawRequest(http.MethodPost, "/persons",
			`{"person_name":"A","email":"a@example.com","nickname":"x"}`))
		testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestQueryPersons(t *testing.T) {
	f := newFixture(t)
	usa, err := f.countries.AddCountry(t.Context(), "USA")
	require.NoError(t, err)
	f.add(t, models.AddPersonRequest{PersonName: "Smith", Email: "smith@example.com", CountryID: usa.ID})
	f.add(t, models.AddPersonRequest{PersonName: "mary", Email: "mary@example.com"})
	f.add(t, models.AddPersonRequest{PersonName: "Rahman", Email: "rahman@example.com", CountryID: usa.ID})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default order is name ascending", "", []string{"mary", "Rahman", "Smith"}},
		{"explicit descending", "?sortBy=PersonName&sortOrder=DESC", []string{"Smith", "Rahman", "mary"}},
		{"search by name", "?searchBy=PersonName&searchString=ma", []string{"mary", "Rahman"}},
		{"search by country keeps persons without one", "?searchBy=CountryID&searchString=usa&sortBy=PersonName", []string{"mary", "Rahman", "Smith"}},
		{"sort by country", "?sortBy=CountryID&sortOrder=ASC", []string{"mary", "Smith", "Rahman"}},
		{"unknown search field returns all", "?searchBy=Nickname&searchString=zzz", []string{"mary", "Rahman", "Smith"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/persons"+tt.query, nil))
			require.Equal(t, http.StatusOK, rr.Code)
			persons := testutil.Decode[[]models.PersonResponse](t, rr)
			got := make([]string, len(persons))
			for i, p := range persons {
				got[i] = p.PersonName
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("search fields", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/persons/search-fields", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		fields := testutil.Decode[[]map[string]string](t, rr)
		assert.Len(t, fields, len(models.SearchFields))
		assert.Equal(t, "PersonName", fields[0]["key"])
	})
}

func TestGetUpdateDeletePerson(t *testing.T) {
	f := newFixture(t)
	added := f.add(t, models.AddPersonRequest{PersonName: "John", Email: "john@example.com", Address: "1 Main Street"})
	path := "/persons/" + added.PersonID.String()

	t.Run("get", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, added.PersonID, testutil.Decode[models.PersonResponse](t, rr).PersonID)
	})

	t.Run("update replaces every field", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPut, path,
			models.UpdatePersonRequest{PersonName: "William", Email: "william@example.com"}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		got := testutil.Decode[models.PersonResponse](t, rr)
		assert.Equal(t, added.PersonID, got.PersonID)
		assert.Equal(t, "William", got.PersonName)
		assert.Empty(t, got.Address)
	})

	t.Run("fetched record can be edited and sent back", func(t *testing.T) {
		chile, err := f.countries.AddCountry(t.Context(), "Chile")
		require.NoError(t, err)
		dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPut, path,
			models.UpdatePersonRequest{PersonName: "William", Email: "william@example.com", DateOfBirth: &dob, CountryID: chile.ID}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		fetched := testutil.Decode[models.PersonResponse](t, rr)
		require.NotNil(t, fetched.Age)
		require.Equal(t, "Chile", fetched.CountryName)
		fetched.PersonName = "Bill"

		rr = testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPut, path, fetched))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		got := testutil.Decode[models.PersonResponse](t, rr)
		assert.Equal(t, "Bill", got.PersonName)
		assert.Equal(t, "Chile", got.CountryName)
		assert.Equal(t, added.PersonID, got.PersonID)
	})

	t.Run("unknown body field is 400", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewRawRequest(http.MethodPut, path,
			`{"person_name":"X","email":"x@example.com","nickname":"x"}`))
		testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("mismatched body id is 400", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPut, path,
			models.UpdatePersonRequest{PersonID: domain.NewPersonID(), PersonName: "X", Email: "x@example.com"}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("update of unknown id is 404", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodPut, "/persons/"+domain.NewPersonID().String(),
			models.UpdatePersonRequest{PersonName: "X", Email: "x@example.com"}))
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("delete then get is 404", func(t *testing.T) {
		rr := testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodDelete, path, nil))
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodGet, path, nil))
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")

		rr = testutil.Serve(f.router, testutil.NewJSONRequest(t, http.MethodDelete, path, nil))
		testutil.AssertError(t, rr, http.StatusNotFound, "not_found")
	})
}
