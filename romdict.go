// Package romdict loads report object model definition documents into a
// finalized metadata.Dictionary.
package romdict

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jacoelho/romdict/metadata"
)

// Load loads and finalizes a definition document from the given filesystem
// and location.
func Load(fsys fs.FS, location string) (*metadata.Dictionary, error) {
	return LoadWithOptions(fsys, location, NewLoadOptions())
}

// LoadWithOptions loads a definition document with explicit configuration.
func LoadWithOptions(fsys fs.FS, location string, opts LoadOptions) (*metadata.Dictionary, error) {
	f, err := fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("load definitions %s: %w", location, err)
	}
	defer f.Close()

	dict, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load definitions %s: %w", location, err)
	}
	return dict, nil
}

// LoadFile loads a definition document from a file path.
func LoadFile(path string) (*metadata.Dictionary, error) {
	return LoadFileWithOptions(path, NewLoadOptions())
}

// LoadFileWithOptions loads a definition document from a file path with
// explicit configuration.
func LoadFileWithOptions(path string, opts LoadOptions) (*metadata.Dictionary, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return LoadWithOptions(os.DirFS(dir), base, opts)
}

// Parse reads a definition document from r.
func Parse(r io.Reader, opts LoadOptions) (*metadata.Dictionary, error) {
	if r == nil {
		return nil, fmt.Errorf("parse definitions: nil reader")
	}
	cfg, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return metadata.Parse(r, cfg)
}
