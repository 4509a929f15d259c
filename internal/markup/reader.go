// Package markup turns a definition document into a stream of start, text
// and end events. Names are reported by local part; namespace prefixes are
// not interpreted.
package markup

import (
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const (
	defaultMaxDepth     = 256
	defaultMaxAttrs     = 256
	defaultMaxTokenSize = 4 << 20
)

// Position is a 1-based line and column in the source.
type Position struct {
	Line   int
	Column int
}

// Attr is one attribute of a start tag.
type Attr struct {
	Name  string
	Value string
}

// Attributes is the attribute list of a start tag in source order.
type Attributes []Attr

// Get returns the value of the attribute with the given name.
// Attribute names are matched exactly.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns the value of the named attribute or "" when absent.
func (a Attributes) Value(name string) string {
	v, _ := a.Get(name)
	return v
}

// Handler receives markup events in document order.
// Text passed to CharData is only valid until the call returns.
type Handler interface {
	StartElement(name string, attrs Attributes, pos Position) error
	CharData(text []byte, pos Position) error
	EndElement(name string, pos Position) error
}

// Limits bounds the shape of accepted documents. Zero values use defaults.
type Limits struct {
	MaxDepth     int
	MaxAttrs     int
	MaxTokenSize int
}

// Resolved returns the limits with defaults applied.
func (l Limits) Resolved() Limits {
	return Limits{
		MaxDepth:     cmp.Or(l.MaxDepth, defaultMaxDepth),
		MaxAttrs:     cmp.Or(l.MaxAttrs, defaultMaxAttrs),
		MaxTokenSize: cmp.Or(l.MaxTokenSize, defaultMaxTokenSize),
	}
}

// Validate reports negative limits.
func (l Limits) Validate() error {
	if l.MaxDepth < 0 {
		return fmt.Errorf("markup max depth must be >= 0")
	}
	if l.MaxAttrs < 0 {
		return fmt.Errorf("markup max attrs must be >= 0")
	}
	if l.MaxTokenSize < 0 {
		return fmt.Errorf("markup max token size must be >= 0")
	}
	return nil
}

// SyntaxError reports a malformed or over-limit document.
type SyntaxError struct {
	Err error
	Pos Position
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup: line %d, column %d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ErrEmptyDocument is returned when the source contains no root tag.
var ErrEmptyDocument = errors.New("empty document")

// Read tokenizes r and forwards events to h. Handler errors are returned
// unchanged; tokenizer and limit errors are returned as *SyntaxError.
func Read(r io.Reader, h Handler, limits Limits) error {
	if r == nil {
		return &SyntaxError{Err: errors.New("nil reader")}
	}
	if err := limits.Validate(); err != nil {
		return err
	}
	limits = limits.Resolved()

	dec := xml.NewDecoder(r)
	dec.Strict = true
	depth := 0
	seenRoot := false

	pos := func() Position {
		line, col := dec.InputPos()
		return Position{Line: line, Column: col}
	}
	fail := func(err error) error {
		return &SyntaxError{Err: err, Pos: pos()}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			seenRoot = true
			if depth > limits.MaxDepth {
				return fail(fmt.Errorf("element depth exceeds %d", limits.MaxDepth))
			}
			if len(t.Attr) > limits.MaxAttrs {
				return fail(fmt.Errorf("element %s has more than %d attributes", t.Name.Local, limits.MaxAttrs))
			}
			attrs := make(Attributes, 0, len(t.Attr))
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				if len(a.Value) > limits.MaxTokenSize {
					return fail(fmt.Errorf("attribute %s exceeds %d bytes", a.Name.Local, limits.MaxTokenSize))
				}
				attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if err := h.StartElement(t.Name.Local, attrs, pos()); err != nil {
				return err
			}
		case xml.EndElement:
			depth--
			if err := h.EndElement(t.Name.Local, pos()); err != nil {
				return err
			}
		case xml.CharData:
			if depth == 0 {
				continue
			}
			if len(t) > limits.MaxTokenSize {
				return fail(fmt.Errorf("character data exceeds %d bytes", limits.MaxTokenSize))
			}
			if err := h.CharData(t, pos()); err != nil {
				return err
			}
		}
	}

	if !seenRoot {
		return &SyntaxError{Err: ErrEmptyDocument, Pos: pos()}
	}
	return nil
}
