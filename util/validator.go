package util

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterCustomTypeFunc(numberValue, Number{})
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
	validate.RegisterValidation("integer", validateInteger)
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return lon >= -180 && lon <= 180
}

func validateInteger(fl validator.FieldLevel) bool {
	return IsInt32(fl.Field().Float())
}

// numberValue exposes a Number to validator tags as a *float64 so that a
// present zero still satisfies "required". Absent values become nil.
func numberValue(field reflect.Value) interface{} {
	if n, ok := field.Interface().(Number); ok && n.Valid {
		return n.Ptr()
	}
	return nil
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
