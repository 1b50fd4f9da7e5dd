package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewValidator returns a validator with the catalog specific tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// writeFailure keeps conflicts reported by the store and wraps anything else as internal.
func writeFailure(err error, message string) error {
	if appErrors.Is(err, appErrors.ErrConflict) {
		return err
	}
	return internalError(err, message)
}
