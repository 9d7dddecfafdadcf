package pipeline

import (
	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

// ComputeDiagram runs the layout engine without caching and returns the
// diagram with its anomaly warnings. Anomalies are also logged to
// opts.Logger and forwarded to opts.Reporter.
func ComputeDiagram(members []family.Member, version int64, opts Options) (diagram.Diagram, []string) {
	collector := &layout.Collector{}
	reporter := layout.MultiReporter(collector, layout.LogReporter{Logger: opts.Logger}, opts.Reporter)

	res := layout.Compute(members, opts.Layout,
		layout.WithReporter(reporter),
		layout.WithVersion(version),
	)

	anomalies := collector.Anomalies()
	warnings := make([]string, len(anomalies))
	for i, a := range anomalies {
		warnings[i] = a.String()
	}
	return res.Diagram, warnings
}
