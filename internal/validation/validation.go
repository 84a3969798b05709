// Package validation declares the request payload schemas and normalizes
// inbound JSON into domain types.
//
// Constraint checking is done with go-playground/validator struct tags plus a
// custom phone rule; tolerant coercion (numeric strings, empty/"undefined"
// normalizing to absent, two accepted date layouts) is handled by the
// Optional* JSON types in coerce.go. Failures are collected per field so the
// client can render every problem at once.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phonePattern matches Turkish mobile numbers as entered on the form:
// exactly 10 digits, leading 5, no country code.
var phonePattern = regexp.MustCompile(`^5\d{9}$`)

// validate is the shared validator instance. validator.Validate caches
// struct metadata internally and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Tag registration only fails for empty tag names; safe to ignore here.
	_ = v.RegisterValidation("trphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors maps a JSON field name to its human-readable messages.
type FieldErrors map[string][]string

// add appends a message for the given field.
func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// structErrors runs tag validation on req and converts the result into
// per-field Turkish messages keyed by the JSON field name (the validator is
// configured with struct field names; the schemas keep them in sync via the
// jsonName map below).
func structErrors(req any, jsonNames map[string]string, fe FieldErrors) {
	err := validate.Struct(req)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.add("_", "Geçersiz istek")
		return
	}
	for _, v := range verrs {
		name := jsonNames[v.StructField()]
		if name == "" {
			name = v.StructField()
		}
		fe.add(name, messageFor(v))
	}
}

// messageFor maps a failed validator tag to the Turkish message the form
// and admin panel display.
func messageFor(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "Bu alan zorunludur"
	case "min":
		return "En az " + v.Param() + " karakter olmalıdır"
	case "max":
		return "En fazla " + v.Param() + " karakter olabilir"
	case "oneof":
		return "Geçersiz sınıf seçimi"
	case "trphone":
		return "Telefon 10 haneli olmalıdır ve 5 ile başlamalıdır"
	default:
		return "Geçersiz değer"
	}
}

// nonNegative adds a field error when an optional numeric value came through
// the coercion layer negative or unparseable.
func nonNegative(n OptionalNumber, field string, fe FieldErrors) {
	if n.Invalid {
		fe.add(field, "Geçerli bir sayı giriniz")
		return
	}
	if n.Valid && n.Value < 0 {
		fe.add(field, "Negatif olamaz")
	}
}

func nonNegativeInt(n OptionalInt, field string, fe FieldErrors) {
	if n.Invalid {
		fe.add(field, "Geçerli bir sayı giriniz")
		return
	}
	if n.Valid && n.Value < 0 {
		fe.add(field, "Negatif olamaz")
	}
}