// Package validation wraps go-playground/validator behind an explicitly
// constructed Validator service. Validation is pure: it produces either a
// normalized value or a BadInput error with one entry per violated field,
// and never touches the store.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/apperrors"
)

// Validator validates input structs and id strings.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports field paths by json tag, so nested
// violations surface as paths like "contact.email".
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates a (possibly nested) input struct and converts violations
// into a BadInput error.
func (val *Validator) Struct(message string, s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternal("validation failed", err)
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Path:    fieldPath(fe),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return apperrors.NewBadInput(message, fields...)
}

// ParseID parses a store identifier: a 24-character hex string. Malformed
// ids short-circuit to BadInput so no store query is ever attempted for
// them.
func (val *Validator) ParseID(path, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewBadInput("Invalid id", apperrors.FieldError{
			Path:    path,
			Message: "must be a 24 character hex string",
			Code:    "len",
		})
	}
	return oid, nil
}

// fieldPath strips the input type name from the namespace, keeping nested
// segments: "ManufacturerInput.contact.email" -> "contact.email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// fieldMessage maps a validator tag to a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL format"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "hexadecimal":
		return "Must be a hex string"
	default:
		return fmt.Sprintf("Validation failed on %s", fe.Tag())
	}
}
