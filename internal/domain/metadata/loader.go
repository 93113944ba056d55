// Package metadata loads save metadata documents and exposes typed lookups
// that tell a missing field apart from a field of the wrong type.
package metadata

import (
	"errors"
	"os"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid JSON document")

// Load checks that path is a regular file, reads it and parses it as JSON.
// Each step fails with its own LoadError kind.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Kind: NotARegularFile, Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Kind: NotARegularFile, Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: ReadFailure, Path: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse parses data as a JSON document. Empty input is a parse failure.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Kind: ParseFailure, Err: errInvalidJSON}
	}
	return &Document{Node: Node{r: gjson.ParseBytes(data)}}, nil
}
