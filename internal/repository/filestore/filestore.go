// Package filestore persists the aggregate as a single JSON document on
// disk. It is the default backend: whole-document reads and writes, no
// partial state observable.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/artesania/feria-api/internal/domain"
)

// document is the on-disk shape of the aggregate. Users get their own
// row type because the domain struct hides the password hash from JSON
// serialization, while the document must keep it.
type document struct {
	Fairs        []domain.Fair        `json:"fairs"`
	Artisans     []domain.Artisan     `json:"artisans"`
	Applications []domain.Application `json:"applications"`
	Users        []userRecord         `json:"users"`
	Counters     domain.Counters      `json:"counters"`
}

type userRecord struct {
	ID            int             `json:"id"`
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Name          string          `json:"name"`
	Role          string          `json:"role"`
	FavoriteFairs []int           `json:"favorite_fairs"`
	Profile       *domain.Profile `json:"profile,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toDocument(agg domain.Aggregate) document {
	doc := document{
		Fairs:        agg.Fairs,
		Artisans:     agg.Artisans,
		Applications: agg.Applications,
		Users:        make([]userRecord, 0, len(agg.Users)),
		Counters:     agg.Counters,
	}
	for _, u := range agg.Users {
		doc.Users = append(doc.Users, userRecord(u))
	}

	return doc
}

func (doc document) toAggregate() domain.Aggregate {
	agg := domain.Aggregate{
		Fairs:        doc.Fairs,
		Artisans:     doc.Artisans,
		Applications: doc.Applications,
		Users:        make([]domain.User, 0, len(doc.Users)),
		Counters:     doc.Counters,
	}
	for _, u := range doc.Users {
		agg.Users = append(agg.Users, domain.User(u))
	}

	// Older documents may omit collections; keep the shape stable.
	if agg.Fairs == nil {
		agg.Fairs = []domain.Fair{}
	}
	if agg.Artisans == nil {
		agg.Artisans = []domain.Artisan{}
	}
	if agg.Applications == nil {
		agg.Applications = []domain.Application{}
	}

	return agg
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(_ context.Context) (domain.Aggregate, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		agg := domain.Empty()
		if err = s.write(agg); err != nil {
			return domain.Aggregate{}, err
		}

		return agg, nil
	}
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("%w: read %v -> %v", domain.ErrStorage, s.path, err)
	}

	var doc document
	if err = json.Unmarshal(raw, &doc); err != nil {
		return domain.Aggregate{}, fmt.Errorf("%w: decode %v -> %v", domain.ErrStorage, s.path, err)
	}

	return doc.toAggregate(), nil
}

func (s *Store) Save(_ context.Context, agg domain.Aggregate) error {
	return s.write(agg)
}

// write marshals the aggregate to a temp file in the target directory and
// renames it over the document, so a crashed write never leaves a torn file.
func (s *Store) write(agg domain.Aggregate) error {
	raw, err := json.MarshalIndent(toDocument(agg), "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode aggregate -> %v", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %v -> %v", domain.ErrStorage, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".feria-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file -> %v", domain.ErrStorage, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %v -> %v", domain.ErrStorage, tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %v -> %v", domain.ErrStorage, tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %v -> %v", domain.ErrStorage, tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename %v -> %v", domain.ErrStorage, s.path, err)
	}

	return nil
}
