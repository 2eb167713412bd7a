package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treelayout/pkg/hierarchy"
)

// ErrEmptyTree is returned when the input decodes to null or an empty object.
var ErrEmptyTree = errors.New("tree is empty")

// ReadJSON decodes a JSON tree from r.
//
// The input must be a single JSON object. Children nest under "children":
//
//	{"id": "root", "children": [{"id": "a"}, {"id": "b"}]}
//
// Numbers are decoded as [json.Number] so large integer IDs and user data keep
// their exact text. Geometry keys read through [hierarchy.Data.Number], which
// accepts them.
//
// ReadJSON returns an error if the JSON is malformed, is not an object, or
// is empty. ReadJSON does not close r.
func ReadJSON(r io.Reader) (hierarchy.Data, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTree
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyTree
	}
	return hierarchy.Data(data), nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (hierarchy.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
