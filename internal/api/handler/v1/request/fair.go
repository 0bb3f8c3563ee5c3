package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CategoryInput struct {
	Name  string `json:"name"`
	Quota int    `json:"quota"`
}

func (c CategoryInput) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&c.Quota, validation.Min(0)),
	)
}

type CreateFairRequest struct {
	Name        string          `json:"name"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Preferences string          `json:"preferences"`
	Categories  []CategoryInput `json:"categories"`
}

func (req *CreateFairRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.EndDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Preferences, validation.Length(0, 500)),
		validation.Field(&req.Categories, validation.Required),
	)
}

// UpdateFairRequest patches a fair; absent fields stay untouched.
type UpdateFairRequest struct {
	Name        *string          `json:"name"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	Preferences *string          `json:"preferences"`
	Categories  *[]CategoryInput `json:"categories"`
}

func (req *UpdateFairRequest) Validate() error {
	if req.StartDate != nil {
		if err := validation.Validate(*req.StartDate, validation.Date("2006-01-02")); err != nil {
			return err
		}
	}
	if req.EndDate != nil {
		if err := validation.Validate(*req.EndDate, validation.Date("2006-01-02")); err != nil {
			return err
		}
	}
	if req.Categories != nil {
		for _, c := range *req.Categories {
			if err := c.Validate(); err != nil {
				return err
			}
		}
	}

	return nil
}
