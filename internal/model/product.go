// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validation errors for product input.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name cannot exceed 255 characters")
	ErrPriceUnset       = errors.New("price must be set")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrDescriptionLimit = errors.New("description cannot exceed 1000 characters")
)

// Validation constants.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

// PriceUnset is the placeholder value of a price field that has not been
// filled in yet. Distinct from a legitimate zero price.
const PriceUnset int64 = -1

// Product represents one catalog entry. The ID is assigned once at
// creation time and never changes; ImageURL holds an inline data URI
// when an image was attached and is empty otherwise.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ProductInput carries the add/edit form fields before they are
// committed to the collection. Price defaults to PriceUnset so a form
// that was never filled in is distinguishable from a zero price.
type ProductInput struct {
	Name        string `validate:"required,max=255"`
	Price       int64
	Description string `validate:"required,max=1000"`
}

// NewProductInput returns an input with the price in its unset state.
func NewProductInput() ProductInput {
	return ProductInput{Price: PriceUnset}
}

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the ProductInput has valid field values.
func (in *ProductInput) Validate() error {
	if in.Price == PriceUnset {
		return ErrPriceUnset
	}

	if in.Price < 0 {
		return ErrNegativePrice
	}

	if err := inputValidator.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return mapFieldError(fieldErrs[0])
		}
		return fmt.Errorf("validating product input: %w", err)
	}

	return nil
}

// mapFieldError converts a validator field error into the matching
// sentinel error so callers can dispatch with errors.Is.
func mapFieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "max" {
			return ErrNameTooLong
		}
		return ErrEmptyName
	case "Description":
		if fe.Tag() == "max" {
			return ErrDescriptionLimit
		}
		return ErrEmptyDescription
	default:
		return fmt.Errorf("invalid field %s: %s", fe.StructField(), fe.Tag())
	}
}
