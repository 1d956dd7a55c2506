package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	countrymodels "roster/internal/country/models"
	personmodels "roster/internal/person/models"
	"roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists the registry in PostgreSQL through database/sql. Row
// order follows the seq column, which preserves insertion order.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres opens a pooled connection with the pgx driver and verifies it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (s *Postgres) AddCountry(ctx context.Context, country *countrymodels.Country) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO countries (id, name) VALUES ($1, $2)`,
		uuid.UUID(country.ID), country.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert country: %w", err)
	}
	return nil
}

func (s *Postgres) ListCountries(ctx context.Context) ([]*countrymodels.Country, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM countries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []*countrymodels.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return countries, nil
}

func (s *Postgres) GetCountryByID(ctx context.Context, id domain.CountryID) (*countrymodels.Country, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM countries WHERE id = $1`, uuid.UUID(id))
	return scanCountry(row)
}

func (s *Postgres) GetCountryByName(ctx context.Context, name string) (*countrymodels.Country, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM countries WHERE name = $1`, name)
	return scanCountry(row)
}

func (s *Postgres) AddPerson(ctx context.Context, person *personmodels.Person) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO persons (id, name, email, date_of_birth, gender, country_id, address, receive_news_letters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(person.ID), person.Name, person.Email, nullTime(person.DateOfBirth),
		person.Gender, nullCountryID(person.CountryID), person.Address, person.ReceiveNewsLetters,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

const personColumns = `id, name, email, date_of_birth, gender, country_id, address, receive_news_letters`

func (s *Postgres) ListPersons(ctx context.Context) ([]*personmodels.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []*personmodels.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

func (s *Postgres) GetPersonByID(ctx context.Context, id domain.PersonID) (*personmodels.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1`, uuid.UUID(id))
	return scanPerson(row)
}

func (s *Postgres) UpdatePerson(ctx context.Context, person *personmodels.Person) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE persons
		SET name = $2, email = $3, date_of_birth = $4, gender = $5,
		    country_id = $6, address = $7, receive_news_letters = $8
		WHERE id = $1`,
		uuid.UUID(person.ID), person.Name, person.Email, nullTime(person.DateOfBirth),
		person.Gender, nullCountryID(person.CountryID), person.Address, person.ReceiveNewsLetters,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeletePerson(ctx context.Context, id domain.PersonID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete person rows affected: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCountry(row rowScanner) (*countrymodels.Country, error) {
	var (
		id   uuid.UUID
		name string
	)
	if err := row.Scan(&id, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan country: %w", err)
	}
	return &countrymodels.Country{ID: domain.CountryID(id), Name: name}, nil
}

func scanPerson(row rowScanner) (*personmodels.Person, error) {
	var (
		id        uuid.UUID
		dob       sql.NullTime
		countryID uuid.NullUUID
		p         personmodels.Person
	)
	err := row.Scan(&id, &p.Name, &p.Email, &dob, &p.Gender, &countryID, &p.Address, &p.ReceiveNewsLetters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	p.ID = domain.PersonID(id)
	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}
	if countryID.Valid {
		p.CountryID = domain.CountryID(countryID.UUID)
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullCountryID(id domain.CountryID) uuid.NullUUID {
	if id.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(id), Valid: true}
}
