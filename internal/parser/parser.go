package parser

import (
	"errors"
	"fmt"

	"github.com/maltedev/depop-deal-finder/internal/models"
)

var ErrParse = errors.New("parse error")

type Parser interface {
	Extract(html string) (*Extraction, error)
}

// Extraction holds the products found in one document together with the
// per-card faults that did not abort extraction.
type Extraction struct {
	Products []models.Product
	Faults   []*ParseError
}

// ParseError is a recoverable fault on a single product card.
type ParseError struct {
	Card  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card %d: invalid %s %q: %v", e.Card, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("card %d: invalid %s %q", e.Card, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
