package domain

// Fair is an event with a fixed date range offering participation slots
// divided into named categories, each with its own quota.
type Fair struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Preferences string     `json:"preferences"`
	Categories  []Category `json:"categories"`
	TotalQuota  int        `json:"total_quota"`
	Occupied    int        `json:"occupied"`
}

// Category is a subdivision of a fair's capacity. Its name is unique
// within the fair.
type Category struct {
	Name  string `json:"name"`
	Quota int    `json:"quota"`
}

// Quota returns the configured quota for a category name, or 0 when the
// fair does not offer the category.
func (f *Fair) Quota(category string) int {
	for _, c := range f.Categories {
		if c.Name == category {
			return c.Quota
		}
	}

	return 0
}

// Offers reports whether the fair has a category with the given name.
func (f *Fair) Offers(category string) bool {
	for _, c := range f.Categories {
		if c.Name == category {
			return true
		}
	}

	return false
}

// CategoryOccupancy pairs a category with its current occupation, used by
// the panels to render "occupied/quota" per category.
type CategoryOccupancy struct {
	Name     string `json:"name"`
	Quota    int    `json:"quota"`
	Occupied int    `json:"occupied"`
}

// FairDetail is a fair decorated with derived occupancy figures.
type FairDetail struct {
	Fair
	CategoryOccupancies []CategoryOccupancy `json:"category_occupancies"`
}
