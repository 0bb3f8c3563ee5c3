package domain

// Artisan is a granted, occupying slot in a fair's category. Records are
// created only through the allocation engine after the quota check.
type Artisan struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	FairID      int    `json:"fair_id"`
}
