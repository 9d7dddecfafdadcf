// Package layout computes the hierarchical family diagram: generation bands,
// sibling and couple grouping, 2-D coordinates and the connector graph.
//
// # Pipeline
//
// [Compute] runs four pure stages over a snapshot of the member list:
//
//  1. [AssignGenerations] labels every member with a generation via BFS.
//  2. [GroupSiblings], [GroupParentsByChildren] and [GroupCouples] partition
//     a generation into placement groups.
//  3. [Position] places the youngest generation left to right, then centers
//     each older generation over its already placed children.
//  4. [Synthesize] derives junction nodes and parent, junction and spouse
//     edges from the positions.
//
// No stage mutates its input, caches results or touches global state, so
// layouts may be computed concurrently from any number of goroutines.
//
// # Tolerance
//
// The engine never fails. Dangling ids, asymmetric spouse links, malformed
// dates and missing positions degrade the diagram (a skipped junction, a
// default coordinate) and are reported through a [Reporter].
//
// # Determinism
//
// Input order is significant: it decides root order, group order and tie
// breaks. Junction and edge ids are pure functions of member ids, so the
// same input always yields byte-identical diagrams.
package layout
