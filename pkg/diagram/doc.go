// Package diagram defines the serialization format handed from the layout
// engine to renderers.
//
// A [Diagram] is a flat list of positioned nodes and the edges between them.
// Member nodes carry the member payload; junction nodes are synthetic points
// where a couple's connector fans out to their children and carry none.
//
// # Serialization
//
// Diagrams round-trip through JSON:
//
//	data, _ := diagram.MarshalDiagram(d)
//	d2, _ := diagram.UnmarshalDiagram(data)
//
// Node and edge ids are deterministic functions of member ids, so two layout
// passes over identical input produce byte-identical output.
package diagram
