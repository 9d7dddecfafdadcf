package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalDiagram serializes a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	return json.MarshalIndent(normalize(d), "", "  ")
}

// UnmarshalDiagram deserializes JSON bytes into a Diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("decode diagram: %w", err)
	}
	for _, n := range d.Nodes {
		if n.ID == "" {
			return Diagram{}, fmt.Errorf("decode diagram: node without id")
		}
		if n.Kind != KindMember && n.Kind != KindJunction {
			return Diagram{}, fmt.Errorf("decode diagram: node %s has unknown kind %q", n.ID, n.Kind)
		}
	}
	return normalize(d), nil
}

// WriteDiagram writes a Diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDiagramFile writes a Diagram to a JSON file.
func WriteDiagramFile(d Diagram, path string) error {
	data, err := MarshalDiagram(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDiagramFile reads a Diagram from a JSON file.
func ReadDiagramFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDiagram(data)
}

// normalize replaces nil lists so they encode as [] and member payloads
// keep a non-nil children slice. The caller's slices are not modified.
func normalize(d Diagram) Diagram {
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	nodes := make([]Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	for i := range nodes {
		if m := nodes[i].Member; m != nil && m.Relations.ChildrenIDs == nil {
			c := m.Clone()
			nodes[i].Member = &c
		}
	}
	d.Nodes = nodes
	return d
}
