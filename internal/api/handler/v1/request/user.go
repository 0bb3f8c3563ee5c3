package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UpdateUserRequest patches an account; absent fields stay untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (req *UpdateUserRequest) Validate() error {
	if req.Name != nil {
		if err := validation.Validate(*req.Name, validation.Required, validation.Length(1, 100)); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := validation.Validate(*req.Email, validation.Required, is.Email); err != nil {
			return err
		}
	}
	if req.Role != nil {
		if err := validation.Validate(*req.Role, validation.Required, validation.In("admin", "user", "artisan")); err != nil {
			return err
		}
	}

	return nil
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p ProductInput) Validate() error {
	return validation.ValidateStruct(
		&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Description, validation.Length(0, 500)),
	)
}

// UpdateProfileRequest replaces the artisan's public profile wholesale,
// products included.
type UpdateProfileRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Products    []ProductInput `json:"products"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Products),
	)
}
