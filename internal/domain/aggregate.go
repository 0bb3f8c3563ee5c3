package domain

// Aggregate is the single persisted document. Every operation loads it,
// mutates it in memory and saves it back whole; entities are never
// persisted independently of the aggregate.
type Aggregate struct {
	Fairs        []Fair        `json:"fairs"`
	Artisans     []Artisan     `json:"artisans"`
	Applications []Application `json:"applications"`
	Users        []User        `json:"users"`
	Counters     Counters      `json:"counters"`
}

// Counters record the highest id ever assigned per collection. They are
// persisted with the document so deleting the highest-numbered record
// never frees its id for reuse.
type Counters struct {
	Fair        int `json:"fair"`
	Artisan     int `json:"artisan"`
	Application int `json:"application"`
	User        int `json:"user"`
}

// Empty returns an initialized aggregate with no records.
func Empty() Aggregate {
	return Aggregate{
		Fairs:        []Fair{},
		Artisans:     []Artisan{},
		Applications: []Application{},
		Users:        []User{},
	}
}

// FindFair returns a pointer into the aggregate's fair slice, or nil.
func (a *Aggregate) FindFair(id int) *Fair {
	for i := range a.Fairs {
		if a.Fairs[i].ID == id {
			return &a.Fairs[i]
		}
	}

	return nil
}

// FindArtisan returns a pointer into the aggregate's artisan slice, or nil.
func (a *Aggregate) FindArtisan(id int) *Artisan {
	for i := range a.Artisans {
		if a.Artisans[i].ID == id {
			return &a.Artisans[i]
		}
	}

	return nil
}

// FindApplication returns a pointer into the aggregate's application
// slice, or nil.
func (a *Aggregate) FindApplication(id int) *Application {
	for i := range a.Applications {
		if a.Applications[i].ID == id {
			return &a.Applications[i]
		}
	}

	return nil
}

// FindUser returns a pointer into the aggregate's user slice, or nil.
func (a *Aggregate) FindUser(id int) *User {
	for i := range a.Users {
		if a.Users[i].ID == id {
			return &a.Users[i]
		}
	}

	return nil
}

// FindUserByEmail returns a pointer into the aggregate's user slice, or nil.
func (a *Aggregate) FindUserByEmail(email string) *User {
	for i := range a.Users {
		if a.Users[i].Email == email {
			return &a.Users[i]
		}
	}

	return nil
}

// CountArtisans returns the fair-wide occupied count for a fair.
func (a *Aggregate) CountArtisans(fairID int) int {
	n := 0
	for _, art := range a.Artisans {
		if art.FairID == fairID {
			n++
		}
	}

	return n
}

// CountArtisansInCategory returns the per-category occupied count used by
// the admission check.
func (a *Aggregate) CountArtisansInCategory(fairID int, category string) int {
	n := 0
	for _, art := range a.Artisans {
		if art.FairID == fairID && art.Category == category {
			n++
		}
	}

	return n
}

// NextFairID advances the fair counter and returns the new id, starting
// at 1. Documents written before counters existed carry max(existing)
// forward first, so ids stay monotonic either way.
func (a *Aggregate) NextFairID() int {
	for _, f := range a.Fairs {
		if f.ID > a.Counters.Fair {
			a.Counters.Fair = f.ID
		}
	}
	a.Counters.Fair++

	return a.Counters.Fair
}

func (a *Aggregate) NextArtisanID() int {
	for _, art := range a.Artisans {
		if art.ID > a.Counters.Artisan {
			a.Counters.Artisan = art.ID
		}
	}
	a.Counters.Artisan++

	return a.Counters.Artisan
}

func (a *Aggregate) NextApplicationID() int {
	for _, app := range a.Applications {
		if app.ID > a.Counters.Application {
			a.Counters.Application = app.ID
		}
	}
	a.Counters.Application++

	return a.Counters.Application
}

func (a *Aggregate) NextUserID() int {
	for _, u := range a.Users {
		if u.ID > a.Counters.User {
			a.Counters.User = u.ID
		}
	}
	a.Counters.User++

	return a.Counters.User
}
