package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse describes one failed field: which field, which rule it
// broke, and the rule's parameter when it has one.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// Shared instance; the request DTOs all validate through it.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("uuid_required", requireUUID)
	return v
}

// requireUUID backs the uuid_required tag. The uuid.UUID zero value is
// all zero bytes, which the plain required rule does not catch.
func requireUUID(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(uuid.UUID)
	return ok && id != uuid.Nil
}

// ValidateStruct runs the struct's validate tags and returns one entry
// per failed field, nil when everything passes.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs []*ErrorResponse
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return errs
}
