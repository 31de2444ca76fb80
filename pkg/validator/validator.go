package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/beautycare/scheduling-api/internal/model"
)

// RegisterCustomValidations wires domain validation rules into gin's
// binding engine. Must be called once before the router starts.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("appointment_status", validAppointmentStatus)
}

// validAppointmentStatus accepts any of the known status values in any
// casing, plus empty (the default status is applied downstream).
func validAppointmentStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return model.IsKnownStatus(s)
}
