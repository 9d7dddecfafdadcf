package layout

import (
	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/family"
)

// Result is the output of one layout pass.
type Result struct {
	Generations GenerationMap
	Positions   PositionMap
	Diagram     diagram.Diagram
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	reporter Reporter
	version  int64
}

// WithReporter attaches a reporter for anomalies found during the pass.
func WithReporter(r Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithVersion stamps the diagram with a caller-owned layout version. The
// engine never reads it.
func WithVersion(v int64) Option {
	return func(o *options) { o.version = v }
}

// Compute runs the full layout over a copy of members and assembles the
// diagram: one member node per input member in input order, then the
// junctions, then the edges. Members without a position are placed at the
// origin.
//
// A zero cfg uses [DefaultConfig]; partially set configs are completed with
// [Config.WithDefaults].
func Compute(members []family.Member, cfg Config, opts ...Option) Result {
	o := options{reporter: nopReporter{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = nopReporter{}
	}
	cfg = cfg.WithDefaults()

	snapshot := family.CloneAll(members)
	Scan(snapshot, o.reporter)

	gens := AssignGenerations(snapshot)
	positions := Position(snapshot, gens, cfg)
	junctions, edges := Synthesize(snapshot, gens, positions, cfg, o.reporter)

	nodes := make([]diagram.Node, 0, len(snapshot)+len(junctions))
	for i := range snapshot {
		m := &snapshot[i]
		p := positions[m.ID]
		nodes = append(nodes, diagram.Node{
			ID:         m.ID,
			Kind:       diagram.KindMember,
			X:          p.X,
			Y:          p.Y,
			Generation: gens[m.ID],
			Member:     m,
		})
	}
	nodes = append(nodes, junctions...)
	if edges == nil {
		edges = []diagram.Edge{}
	}

	d := diagram.Diagram{Nodes: nodes, Edges: edges, Version: o.version}
	b := d.Bounds()
	d.Width, d.Height = b.MaxX+cfg.NodeSpacing, b.MaxY+cfg.NodeHeight
	if len(nodes) == 0 {
		d.Width, d.Height = 0, 0
	}

	return Result{Generations: gens, Positions: positions, Diagram: d}
}

// Bands returns member ids per generation, oldest first, each band in input
// order.
func Bands(members []family.Member, gens GenerationMap) [][]string {
	maxGen := -1
	for _, g := range gens {
		maxGen = max(maxGen, g)
	}
	bands := make([][]string, maxGen+1)
	for _, m := range members {
		g, ok := gens[m.ID]
		if !ok {
			continue
		}
		bands[g] = append(bands[g], m.ID)
	}
	return bands
}
