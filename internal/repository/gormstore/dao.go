package gormstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/artesania/feria-api/internal/domain"
)

// Row types for the Postgres backend. Nested document parts (categories,
// favorites, profiles) stay JSON so the table shape mirrors the aggregate
// document instead of normalizing it away.

type Fair struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	StartDate   string
	EndDate     string
	Preferences string
	Categories  categoryList `gorm:"type:jsonb"`
	TotalQuota  int
	Occupied    int
}

type Artisan struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Category    string `gorm:"not null"`
	Description string
	FairID      int `gorm:"index"`
}

type Application struct {
	ID          int `gorm:"primaryKey"`
	UserID      int `gorm:"index"`
	Name        string
	Description string
	FairID      int
	Category    string
	State       string `gorm:"not null"`
}

type User struct {
	ID            int    `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string
	Name          string
	Role          string
	FavoriteFairs intList     `gorm:"type:jsonb"`
	Profile       *profileDoc `gorm:"type:jsonb"`
	CreatedAt     time.Time
}

// Counter keeps the highest id ever assigned for one collection, one row
// per collection name.
type Counter struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Fair{},
		&Artisan{},
		&Application{},
		&User{},
		&Counter{},
	)
}

type categoryList []domain.Category

func (c categoryList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *categoryList) Scan(src any) error {
	return scanJSON(src, c)
}

type intList []int

func (l intList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *intList) Scan(src any) error {
	return scanJSON(src, l)
}

type profileDoc domain.Profile

func (p profileDoc) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *profileDoc) Scan(src any) error {
	return scanJSON(src, p)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
