package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so errors match what clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProductInput is the create payload. Pointer fields let validation tell
// a missing value from a zero one.
type ProductInput struct {
	Title       *string  `json:"title" validate:"required,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    *string  `json:"category" validate:"required,min=1"`
	InStock     *bool    `json:"in_stock"`
	Image       *string  `json:"image"`
	Tag         *string  `json:"tag"`
}

// Validate checks the payload and builds the Product to persist. On
// failure the error is a *ValidationError naming every bad field.
func (in *ProductInput) Validate() (*Product, error) {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fromValidator(verrs)
		}
		return nil, err
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	return &Product{
		Title:       *in.Title,
		Description: in.Description,
		Price:       *in.Price,
		Category:    *in.Category,
		InStock:     inStock,
		Image:       in.Image,
		Tag:         in.Tag,
	}, nil
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload does not match the product
// schema.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

func fromValidator(verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must not be empty"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

// NewTypeError turns a JSON decoding failure into a ValidationError.
func NewTypeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &ValidationError{Fields: []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type),
		}}}
	case errors.As(err, &syntaxErr):
		return &ValidationError{Fields: []FieldError{{
			Field:   "body",
			Message: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset),
		}}}
	case errors.Is(err, io.EOF):
		return &ValidationError{Fields: []FieldError{{Field: "body", Message: "field required"}}}
	default:
		return &ValidationError{Fields: []FieldError{{Field: "body", Message: err.Error()}}}
	}
}
