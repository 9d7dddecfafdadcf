// Package render turns a positioned [diagram.Diagram] into viewable output.
//
// # Formats
//
//   - svg: hand-built SVG with member cards, junction dots and connectors
//     ([SVG]); with Options.Engine "graphviz" the SVG comes from Graphviz
//   - dot: Graphviz DOT with every node pinned at its computed position
//     ([ToDOT])
//   - png: the DOT rendered by go-graphviz ([RenderGraphviz])
//   - pdf: the native SVG converted by rsvg-convert ([ToPDF])
//   - json: the diagram itself
//
// The renderer never moves a node. Graphviz output uses the neato engine
// with pinned "pos" attributes, so both engines show the same layout.
//
// # Geometry
//
// A member node's (X, Y) is the top-left corner of its card. Cards are
// [CardWidth] wide and [CardHeight] tall, matching the default layout
// node height. A junction's (X, Y) is its
// center. Edges attach at the handles named in pkg/diagram: parent edges
// leave the bottom center of a card and enter the top center, spouse
// edges join the facing sides of the two cards.
package render
