package domain

import "time"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleArtisan = "artisan"
)

type User struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	FavoriteFairs []int     `json:"favorite_fairs"`
	Profile       *Profile  `json:"profile,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Profile is the public face of an artisan-role user, shown on the
// directory alongside their products.
type Profile struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}

type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
