// Package form tracks the state of the add/edit product forms,
// including the dirty flag that gates the save action.
package form

import "github.com/kkozlov/catalogcore/internal/model"

// fields is the comparable snapshot of everything the form edits.
type fields struct {
	name        string
	price       int64
	description string
	image       string
}

// Session tracks the current values of an add or edit form against the
// last-saved baseline of the product being edited. A save should only
// be offered while Dirty() is true, preventing no-op writes.
type Session struct {
	baseline fields
	current  fields
}

// NewAdd returns a session for a brand-new product: empty baseline and
// the price in its unset placeholder state.
func NewAdd() *Session {
	f := fields{price: model.PriceUnset}
	return &Session{baseline: f, current: f}
}

// NewEdit returns a session seeded from the product's last-saved values.
func NewEdit(p model.Product) *Session {
	f := fields{
		name:        p.Name,
		price:       p.Price,
		description: p.Description,
		image:       p.ImageURL,
	}
	return &Session{baseline: f, current: f}
}

// SetName replaces the name field.
func (s *Session) SetName(name string) {
	s.current.name = name
}

// SetPrice replaces the price field with a parsed value.
func (s *Session) SetPrice(price int64) {
	s.current.price = price
}

// ClearPrice returns the price field to its unset placeholder state.
func (s *Session) ClearPrice() {
	s.current.price = model.PriceUnset
}

// SetDescription replaces the description field.
func (s *Session) SetDescription(description string) {
	s.current.description = description
}

// SetImage replaces the image reference. The reference is whatever the
// embedding layer uses to identify the pending image, typically the
// selected file name or an encoded data URI.
func (s *Session) SetImage(ref string) {
	s.current.image = ref
}

// ClearImage removes the image reference.
func (s *Session) ClearImage() {
	s.current.image = ""
}

// Dirty reports whether at least one of name, price, description or
// image differs from the last-saved values.
func (s *Session) Dirty() bool {
	return s.current != s.baseline
}

// Valid reports whether the current values would pass save validation.
func (s *Session) Valid() bool {
	input := s.Input()
	return input.Validate() == nil
}

// Input materializes the current field values for a save.
func (s *Session) Input() model.ProductInput {
	return model.ProductInput{
		Name:        s.current.name,
		Price:       s.current.price,
		Description: s.current.description,
	}
}

// Image returns the current image reference, empty if none.
func (s *Session) Image() string {
	return s.current.image
}

// Commit resets the baseline to the current values after a successful
// save, clearing the dirty flag.
func (s *Session) Commit() {
	s.baseline = s.current
}
