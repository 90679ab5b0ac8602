package auth

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"messenger-lab/errors"
)

var validate = newValidator()

// Usernames: 3-20 characters, letters, digits or underscore.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return v
}

type RegisterRequest struct {
	Username    string `validate:"required,username"`
	DisplayName string `validate:"required,min=1,max=32"`
	Password    string `validate:"required,min=6,max=72"`
}

type ServerNameRequest struct {
	Name string `validate:"required,min=2,max=50"`
}

// ValidateRegister checks the registration form. Uniqueness of the
// username is the repository's concern, not validated here.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			if fieldErr.Field() == "Password" {
				return errors.ErrInvalidPassword
			}
		}
		return errors.ErrInvalidUsername
	}
	return nil
}

func ValidateServerName(name string) error {
	if err := validate.Struct(ServerNameRequest{Name: name}); err != nil {
		return errors.ErrInvalidServerName
	}
	return nil
}
