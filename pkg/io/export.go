package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/familytree/pkg/family"
)

// WriteJSON encodes members as a pretty-printed JSON array and writes it
// to w. The output can be re-imported with [ReadJSON].
func WriteJSON(members []family.Member, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportable(members)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes members to a JSON file at path.
func ExportJSON(members []family.Member, path string) error {
	return exportFile(members, path, FormatJSON)
}

// WriteYAML encodes members as a YAML sequence and writes it to w.
func WriteYAML(members []family.Member, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportable(members)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportYAML writes members to a YAML file at path.
func ExportYAML(members []family.Member, path string) error {
	return exportFile(members, path, FormatYAML)
}

// Export writes members to path, picking the format with [FormatFromPath].
func Export(members []family.Member, path string) error {
	return exportFile(members, path, FormatFromPath(path))
}

// Write encodes members to w in the given format.
func Write(members []family.Member, w io.Writer, format Format) error {
	if format == FormatYAML {
		return WriteYAML(members, w)
	}
	return WriteJSON(members, w)
}

func exportFile(members []family.Member, path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(members, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// exportable copies members so that nil children encode as [].
func exportable(members []family.Member) []family.Member {
	if members == nil {
		return []family.Member{}
	}
	return family.CloneAll(members)
}
