package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// ReadJSON decodes and validates a JSON member array from r.
//
// The top level must be an array. Unknown object fields, trailing data and
// any failure reported by [Validate] yield an [errors.ImportFormatError]
// and a nil list. A missing childrenIds is read as an empty list.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]family.Member, error) {
	return readJSON(r, "input")
}

// ImportJSON reads a JSON member file at path.
func ImportJSON(path string) ([]family.Member, error) {
	return importFile(path, FormatJSON)
}

// ReadYAML decodes and validates a YAML member sequence from r, with the
// same rules as [ReadJSON].
func ReadYAML(r io.Reader) ([]family.Member, error) {
	return readYAML(r, "input")
}

// ImportYAML reads a YAML member file at path.
func ImportYAML(path string) ([]family.Member, error) {
	return importFile(path, FormatYAML)
}

// Import reads a member file, picking the format with [FormatFromPath].
func Import(path string) ([]family.Member, error) {
	return importFile(path, FormatFromPath(path))
}

// Read decodes members from r in the given format.
func Read(r io.Reader, format Format) ([]family.Member, error) {
	if format == FormatYAML {
		return ReadYAML(r)
	}
	return ReadJSON(r)
}

func importFile(path string, format Format) ([]family.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "import file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return readYAML(f, path)
	}
	return readJSON(f, path)
}

func readJSON(r io.Reader, source string) ([]family.Member, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, formatError(source, "top level must be an array of members")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var members []family.Member
	if err := dec.Decode(&members); err != nil {
		return nil, formatError(source, err.Error())
	}
	if dec.More() {
		return nil, formatError(source, "unexpected data after the member array")
	}
	return finish(members, source)
}

func readYAML(r io.Reader, source string) ([]family.Member, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, formatError(source, err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, formatError(source, "top level must be a sequence of members")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var members []family.Member
	if err := dec.Decode(&members); err != nil {
		return nil, formatError(source, err.Error())
	}
	return finish(members, source)
}

func finish(members []family.Member, source string) ([]family.Member, error) {
	if members == nil {
		members = []family.Member{}
	}
	for i := range members {
		if members[i].Relations.ChildrenIDs == nil {
			members[i].Relations.ChildrenIDs = []string{}
		}
	}
	if err := Validate(members, source); err != nil {
		return nil, err
	}
	return members, nil
}

func formatError(source, problem string) error {
	return &errors.ImportFormatError{Source: source, Problems: []string{problem}}
}
