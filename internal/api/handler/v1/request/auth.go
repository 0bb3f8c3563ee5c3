package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// At least 8 characters with one letter and one digit. Lookaheads need
// regexp2; the stdlib engine does not support them.
var passwordPattern = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d)\S{8,}$`, regexp2.None)

func validatePassword(value interface{}) error {
	password, _ := value.(string)

	ok, err := passwordPattern.MatchString(password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("must be at least 8 characters with at least one letter and one digit")
	}

	return nil
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (req *SignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.By(validatePassword)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In("user", "artisan")),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
