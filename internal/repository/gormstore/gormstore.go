// Package gormstore keeps the aggregate document in Postgres with the
// same contract as the file backend: Load reads everything, Save replaces
// everything inside one transaction.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/artesania/feria-api/internal/domain"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Store, error) {
	if err := InitTables(db); err != nil {
		return nil, storageErr("migrate", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (domain.Aggregate, error) {
	agg := domain.Empty()
	tx := s.db.WithContext(ctx)

	var fairs []Fair
	if err := tx.Order("id").Find(&fairs).Error; err != nil {
		return domain.Aggregate{}, storageErr("load fairs", err)
	}
	for _, f := range fairs {
		agg.Fairs = append(agg.Fairs, fairToDomain(f))
	}

	var artisans []Artisan
	if err := tx.Order("id").Find(&artisans).Error; err != nil {
		return domain.Aggregate{}, storageErr("load artisans", err)
	}
	for _, a := range artisans {
		agg.Artisans = append(agg.Artisans, artisanToDomain(a))
	}

	var applications []Application
	if err := tx.Order("id").Find(&applications).Error; err != nil {
		return domain.Aggregate{}, storageErr("load applications", err)
	}
	for _, app := range applications {
		agg.Applications = append(agg.Applications, applicationToDomain(app))
	}

	var users []User
	if err := tx.Order("id").Find(&users).Error; err != nil {
		return domain.Aggregate{}, storageErr("load users", err)
	}
	for _, u := range users {
		agg.Users = append(agg.Users, userToDomain(u))
	}

	var counters []Counter
	if err := tx.Find(&counters).Error; err != nil {
		return domain.Aggregate{}, storageErr("load counters", err)
	}
	agg.Counters = countersToDomain(counters)

	return agg, nil
}

func (s *Store) Save(ctx context.Context, agg domain.Aggregate) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&Fair{}, &Artisan{}, &Application{}, &User{}, &Counter{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}

		if len(agg.Fairs) > 0 {
			rows := make([]Fair, 0, len(agg.Fairs))
			for _, f := range agg.Fairs {
				rows = append(rows, fairToRow(f))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(agg.Artisans) > 0 {
			rows := make([]Artisan, 0, len(agg.Artisans))
			for _, a := range agg.Artisans {
				rows = append(rows, artisanToRow(a))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(agg.Applications) > 0 {
			rows := make([]Application, 0, len(agg.Applications))
			for _, app := range agg.Applications {
				rows = append(rows, applicationToRow(app))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(agg.Users) > 0 {
			rows := make([]User, 0, len(agg.Users))
			for _, u := range agg.Users {
				rows = append(rows, userToRow(u))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		counters := countersToRows(agg.Counters)
		if err := tx.Create(&counters).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return storageErr("save aggregate", err)
	}

	return nil
}

// storageErr maps a driver error onto domain.ErrStorage, keeping the
// Postgres error class visible when the driver reports one.
func storageErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) {
			return fmt.Errorf("%w: %v -> connection lost (%v)", domain.ErrStorage, op, pgErr.Code)
		}

		return fmt.Errorf("%w: %v -> %v (%v)", domain.ErrStorage, op, pgErr.Message, pgErr.Code)
	}

	return fmt.Errorf("%w: %v -> %v", domain.ErrStorage, op, err)
}

func countersToDomain(rows []Counter) domain.Counters {
	var c domain.Counters
	for _, row := range rows {
		switch row.Name {
		case "fair":
			c.Fair = row.Value
		case "artisan":
			c.Artisan = row.Value
		case "application":
			c.Application = row.Value
		case "user":
			c.User = row.Value
		}
	}

	return c
}

func countersToRows(c domain.Counters) []Counter {
	return []Counter{
		{Name: "fair", Value: c.Fair},
		{Name: "artisan", Value: c.Artisan},
		{Name: "application", Value: c.Application},
		{Name: "user", Value: c.User},
	}
}

func fairToDomain(f Fair) domain.Fair {
	return domain.Fair{
		ID:          f.ID,
		Name:        f.Name,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Preferences: f.Preferences,
		Categories:  []domain.Category(f.Categories),
		TotalQuota:  f.TotalQuota,
		Occupied:    f.Occupied,
	}
}

func fairToRow(f domain.Fair) Fair {
	return Fair{
		ID:          f.ID,
		Name:        f.Name,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Preferences: f.Preferences,
		Categories:  categoryList(f.Categories),
		TotalQuota:  f.TotalQuota,
		Occupied:    f.Occupied,
	}
}

func artisanToDomain(a Artisan) domain.Artisan {
	return domain.Artisan{
		ID:          a.ID,
		Name:        a.Name,
		Category:    a.Category,
		Description: a.Description,
		FairID:      a.FairID,
	}
}

func artisanToRow(a domain.Artisan) Artisan {
	return Artisan{
		ID:          a.ID,
		Name:        a.Name,
		Category:    a.Category,
		Description: a.Description,
		FairID:      a.FairID,
	}
}

func applicationToDomain(a Application) domain.Application {
	return domain.Application{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Description: a.Description,
		FairID:      a.FairID,
		Category:    a.Category,
		State:       a.State,
	}
}

func applicationToRow(a domain.Application) Application {
	return Application{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Description: a.Description,
		FairID:      a.FairID,
		Category:    a.Category,
		State:       a.State,
	}
}

func userToDomain(u User) domain.User {
	du := domain.User{
		ID:            u.ID,
		Email:         u.Email,
		Password:      u.Password,
		Name:          u.Name,
		Role:          u.Role,
		FavoriteFairs: []int(u.FavoriteFairs),
		CreatedAt:     u.CreatedAt,
	}
	if u.Profile != nil {
		p := domain.Profile(*u.Profile)
		du.Profile = &p
	}

	return du
}

func userToRow(u domain.User) User {
	row := User{
		ID:            u.ID,
		Email:         u.Email,
		Password:      u.Password,
		Name:          u.Name,
		Role:          u.Role,
		FavoriteFairs: intList(u.FavoriteFairs),
		CreatedAt:     u.CreatedAt,
	}
	if u.Profile != nil {
		p := profileDoc(*u.Profile)
		row.Profile = &p
	}

	return row
}
