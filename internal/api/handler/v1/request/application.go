package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitApplicationRequest struct {
	FairID      int    `json:"fair_id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *SubmitApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FairID, validation.Required, validation.Min(1)),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}
