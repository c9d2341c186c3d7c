package handlers

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("lonlat", validateLonLat); err != nil {
		panic(fmt.Sprintf("register lonlat validation: %v", err))
	}
	return v
}

// validateLonLat accepts a [lon, lat] pair within WGS84 ranges.
func validateLonLat(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice || f.Len() != 2 {
		return false
	}

	lon, lat := f.Index(0), f.Index(1)
	if lon.Kind() != reflect.Float64 || lat.Kind() != reflect.Float64 {
		return false
	}

	return lon.Float() >= -180 && lon.Float() <= 180 &&
		lat.Float() >= -90 && lat.Float() <= 90
}

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Namespace()
		switch err.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", err.Field())
		case "lonlat":
			fields[field] = fmt.Sprintf("%s must be a [lon, lat] pair with lon in [-180, 180] and lat in [-90, 90]", err.Field())
		case "max":
			fields[field] = fmt.Sprintf("%s must contain at most %s items", err.Field(), err.Param())
		default:
			fields[field] = fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag())
		}
	}

	return &ValidationError{
		Message: "validation failed",
		Fields:  fields,
	}
}
