package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// CreateArtisanRequest is the admin's direct allocation, bypassing the
// application workflow but not the quota check.
type CreateArtisanRequest struct {
	FairID      int    `json:"fair_id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateArtisanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FairID, validation.Required, validation.Min(1)),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

// UpdateArtisanRequest patches an allocation; absent fields stay
// untouched. The engine does not re-check quota on edits.
type UpdateArtisanRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	FairID      *int    `json:"fair_id"`
}

func (req *UpdateArtisanRequest) Validate() error {
	if req.Name != nil {
		if err := validation.Validate(*req.Name, validation.Required, validation.Length(1, 100)); err != nil {
			return err
		}
	}
	if req.Category != nil {
		if err := validation.Validate(*req.Category, validation.Required, validation.Length(1, 50)); err != nil {
			return err
		}
	}
	if req.FairID != nil {
		if err := validation.Validate(*req.FairID, validation.Min(1)); err != nil {
			return err
		}
	}

	return nil
}
