package response

import "github.com/artesania/feria-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type FavoriteToggleResponse struct {
	FairID   int  `json:"fair_id"`
	Favorite bool `json:"favorite"`
}

// DirectoryArtisan is a public directory entry: the allocated artisan
// with a summary of the fair hosting it.
type DirectoryArtisan struct {
	domain.Artisan
	Fair *FairSummary `json:"fair,omitempty"`
}

type FairSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Occupied   int    `json:"occupied"`
	TotalQuota int    `json:"total_quota"`
}
