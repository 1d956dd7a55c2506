package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	countrymodels "roster/internal/country/models"
	personmodels "roster/internal/person/models"
	"roster/pkg/domain"
	"roster/pkg/platform/sentinel"
)

// Gorm persists the registry through GORM. It backs single-node deployments
// on SQLite. Row order follows the auto-increment Seq key.
type Gorm struct {
	db *gorm.DB
}

type countryRow struct {
	Seq  int64  `gorm:"primaryKey;autoIncrement"`
	UUID string `gorm:"column:id;size:36;not null;uniqueIndex"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

func (countryRow) TableName() string { return "countries" }

type personRow struct {
	Seq                int64      `gorm:"primaryKey;autoIncrement"`
	UUID               string     `gorm:"column:id;size:36;not null;uniqueIndex"`
	Name               string     `gorm:"size:40;not null"`
	Email              string     `gorm:"size:40;not null"`
	DateOfBirth        *time.Time `gorm:"column:date_of_birth"`
	Gender             string     `gorm:"size:10;not null;default:''"`
	CountryID          *string    `gorm:"column:country_id;size:36"`
	Address            string     `gorm:"size:200;not null;default:''"`
	ReceiveNewsLetters bool       `gorm:"column:receive_news_letters;not null;default:false"`
}

func (personRow) TableName() string { return "persons" }

// OpenSQLite opens path with GORM, bridges GORM's logger to slog and creates
// the registry tables. Use ":memory:" for an ephemeral database.
func OpenSQLite(path string, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sqlite handle: %w", err)
	}
	// SQLite serializes writers; one connection also keeps ":memory:" shared.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&countryRow{}, &personRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) AddCountry(ctx context.Context, country *countrymodels.Country) error {
	row := countryRow{UUID: country.ID.String(), Name: country.Name}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert country: %w", err)
	}
	return nil
}

func (s *Gorm) ListCountries(ctx context.Context) ([]*countrymodels.Country, error) {
	var rows []countryRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	countries := make([]*countrymodels.Country, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, nil
}

func (s *Gorm) GetCountryByID(ctx context.Context, id domain.CountryID) (*countrymodels.Country, error) {
	return s.findCountry(ctx, "id = ?", id.String())
}

func (s *Gorm) GetCountryByName(ctx context.Context, name string) (*countrymodels.Country, error) {
	return s.findCountry(ctx, "name = ?", name)
}

func (s *Gorm) findCountry(ctx context.Context, where string, arg any) (*countrymodels.Country, error) {
	var row countryRow
	if err := s.db.WithContext(ctx).Where(where, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return row.toModel()
}

func (s *Gorm) AddPerson(ctx context.Context, person *personmodels.Person) error {
	row := newPersonRow(person)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *Gorm) ListPersons(ctx context.Context) ([]*personmodels.Person, error) {
	var rows []personRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	persons := make([]*personmodels.Person, 0, len(rows))
	for _, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func (s *Gorm) GetPersonByID(ctx context.Context, id domain.PersonID) (*personmodels.Person, error) {
	var row personRow
	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return row.toModel()
}

// UpdatePerson writes every mutable column, zero values included.
func (s *Gorm) UpdatePerson(ctx context.Context, person *personmodels.Person) error {
	row := newPersonRow(person)
	res := s.db.WithContext(ctx).Model(&personRow{}).Where("id = ?", row.UUID).Updates(map[string]any{
		"name":                 row.Name,
		"email":                row.Email,
		"date_of_birth":        row.DateOfBirth,
		"gender":               row.Gender,
		"country_id":           row.CountryID,
		"address":              row.Address,
		"receive_news_letters": row.ReceiveNewsLetters,
	})
	if res.Error != nil {
		return fmt.Errorf("update person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Gorm) DeletePerson(ctx context.Context, id domain.PersonID) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&personRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete person: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r countryRow) toModel() (*countrymodels.Country, error) {
	id, err := domain.ParseCountryID(r.UUID)
	if err != nil {
		return nil, fmt.Errorf("decode country %d: %w", r.Seq, err)
	}
	return &countrymodels.Country{ID: id, Name: r.Name}, nil
}

func newPersonRow(p *personmodels.Person) personRow {
	row := personRow{
		UUID:               p.ID.String(),
		Name:               p.Name,
		Email:              p.Email,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
	}
	if !p.CountryID.IsNil() {
		countryID := p.CountryID.String()
		row.CountryID = &countryID
	}
	return row
}

func (r personRow) toModel() (*personmodels.Person, error) {
	id, err := domain.ParsePersonID(r.UUID)
	if err != nil {
		return nil, fmt.Errorf("decode person %d: %w", r.Seq, err)
	}
	p := &personmodels.Person{
		ID:                 id,
		Name:               r.Name,
		Email:              r.Email,
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
	if r.CountryID != nil {
		countryID, err := domain.ParseCountryID(*r.CountryID)
		if err != nil {
			return nil, fmt.Errorf("decode person %d country: %w", r.Seq, err)
		}
		p.CountryID = countryID
	}
	return p, nil
}
