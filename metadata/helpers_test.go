package metadata

import (
	"slices"
	"strings"
	"testing"

	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/markup"
)

func wrap(body string) string {
	return "<ReportMetaData>" + body + "</ReportMetaData>"
}

func mustParse(t *testing.T, doc string) *Dictionary {
	t.Helper()
	d, err := Parse(strings.NewReader(doc), Config{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return d
}

// build feeds doc through a fresh builder without finishing it, so tests
// can inspect partial state after recoverable errors.
func build(t *testing.T, doc string) (*Builder, error) {
	t.Helper()
	b := NewBuilder(Config{})
	err := markup.Read(strings.NewReader(doc), b, Limits{})
	return b, err
}

func errorCodes(err error) []string {
	defs, _ := metaerrors.AsDefinitions(err)
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Code
	}
	return out
}

func wantCodes(t *testing.T, err error, want ...metaerrors.ErrorCode) {
	t.Helper()
	got := errorCodes(err)
	wantStr := make([]string, len(want))
	for i, c := range want {
		wantStr[i] = string(c)
	}
	if !slices.Equal(got, wantStr) {
		t.Fatalf("error codes = %v, want %v (err = %v)", got, wantStr, err)
	}
}

func mustElement(t *testing.T, d *Dictionary, name string) *ElementDefn {
	t.Helper()
	e, ok := d.Element(name)
	if !ok {
		t.Fatalf("Element(%q) not found", name)
	}
	return e
}

func mustProperty(t *testing.T, e *ElementDefn, name string) *PropertyDefn {
	t.Helper()
	p, ok := e.Property(name)
	if !ok {
		t.Fatalf("%s.Property(%q) not found", e.Name(), name)
	}
	return p
}
