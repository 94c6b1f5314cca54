package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProduct is returned when a product fails field validation.
var ErrInvalidProduct = errors.New("invalid product")

var validate = validator.New()

// Product represents a document in the inventory collection.
// ID is assigned by the store and is never written back as a field.
type Product struct {
	ID              string    `json:"id" firestore:"-" validate:"-"`
	Name            string    `json:"name" firestore:"name" validate:"required"`
	Price           int       `json:"price" firestore:"price" validate:"gte=1"`
	Quantity        int       `json:"quantity" firestore:"quantity" validate:"gte=0"`
	ImgFile         string    `json:"imgfile" firestore:"imgfile" validate:"required"`
	Timestamp       time.Time `json:"timestamp" firestore:"timestamp" validate:"required"`
	ActualDateAdded time.Time `json:"actualdateadded" firestore:"actualdateadded" validate:"required"`
}

// Validate checks the required fields and ranges of a product record.
func (p Product) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidProduct, p.Name, err)
	}
	return nil
}

// InStock reports whether the product has any quantity left.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// NewProduct is the record returned by the new products function.
// Name carries the quantity suffix, e.g. "Apples (12)".
type NewProduct struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           int       `json:"price"`
	Quantity        int       `json:"quantity"`
	ImgFile         string    `json:"imgfile"`
	Timestamp       time.Time `json:"timestamp"`
	ActualDateAdded time.Time `json:"actualdateadded"`
}

// DisplayName formats a name with its quantity as "{name} ({quantity})".
func DisplayName(name string, quantity int) string {
	return fmt.Sprintf("%s (%d)", name, quantity)
}

// ToNewProduct projects a stored product into the response shape.
func (p Product) ToNewProduct() NewProduct {
	return NewProduct{
		ID:              p.ID,
		Name:            DisplayName(p.Name, p.Quantity),
		Price:           p.Price,
		Quantity:        p.Quantity,
		ImgFile:         p.ImgFile,
		Timestamp:       p.Timestamp,
		ActualDateAdded: p.ActualDateAdded,
	}
}
