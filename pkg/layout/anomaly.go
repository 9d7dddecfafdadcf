package layout

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/family"
)

// AnomalyKind classifies a recoverable data problem found during layout.
type AnomalyKind string

// Anomaly kinds.
const (
	KindMissingPosition AnomalyKind = "missing_position"
	KindMalformedDate   AnomalyKind = "malformed_date"
	KindDataIntegrity   AnomalyKind = "data_integrity"
)

// Anomaly is a data problem the engine recovered from. It never aborts a
// layout pass.
type Anomaly interface {
	Kind() AnomalyKind
	// Subject is the member or junction id the anomaly is about.
	Subject() string
	String() string
}

// MissingPositionAnomaly reports a junction that was not synthesized because
// a parent or the first child had no position.
type MissingPositionAnomaly struct {
	JunctionID string
	MemberID   string
}

func (a MissingPositionAnomaly) Kind() AnomalyKind { return KindMissingPosition }
func (a MissingPositionAnomaly) Subject() string   { return a.JunctionID }
func (a MissingPositionAnomaly) String() string {
	return fmt.Sprintf("junction %s skipped: member %s has no position", a.JunctionID, a.MemberID)
}

// MalformedDateAnomaly reports a date without a four-digit year. The member
// sorts as if born in [family.UnknownYear].
type MalformedDateAnomaly struct {
	MemberID string
	Field    string // "birthDate" or "deathDate"
	Value    string
}

func (a MalformedDateAnomaly) Kind() AnomalyKind { return KindMalformedDate }
func (a MalformedDateAnomaly) Subject() string   { return a.MemberID }
func (a MalformedDateAnomaly) String() string {
	return fmt.Sprintf("member %s: %s %q has no four-digit year", a.MemberID, a.Field, a.Value)
}

// DataIntegrityAnomaly reports a dangling or asymmetric relation. The
// relation is treated as absent.
type DataIntegrityAnomaly struct {
	MemberID string
	Relation string // "fatherId", "motherId", "spouseId" or "childrenIds"
	TargetID string
	Reason   string
}

func (a DataIntegrityAnomaly) Kind() AnomalyKind { return KindDataIntegrity }
func (a DataIntegrityAnomaly) Subject() string   { return a.MemberID }
func (a DataIntegrityAnomaly) String() string {
	return fmt.Sprintf("member %s: %s %s %s", a.MemberID, a.Relation, a.TargetID, a.Reason)
}

// =============================================================================
// Reporters
// =============================================================================

// Reporter receives anomalies as they are found.
type Reporter interface {
	Report(Anomaly)
}

// ReporterFunc adapts a function to [Reporter].
type ReporterFunc func(Anomaly)

// Report calls f(a).
func (f ReporterFunc) Report(a Anomaly) { f(a) }

type nopReporter struct{}

func (nopReporter) Report(Anomaly) {}

// Collector records every reported anomaly. It is safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	anomalies []Anomaly
}

// Report implements [Reporter].
func (c *Collector) Report(a Anomaly) {
	c.mu.Lock()
	c.anomalies = append(c.anomalies, a)
	c.mu.Unlock()
}

// Anomalies returns a copy of the recorded anomalies in report order.
func (c *Collector) Anomalies() []Anomaly {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Anomaly, len(c.anomalies))
	copy(out, c.anomalies)
	return out
}

// Count returns the number of recorded anomalies of the given kind.
func (c *Collector) Count(kind AnomalyKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, a := range c.anomalies {
		if a.Kind() == kind {
			n++
		}
	}
	return n
}

// LogReporter logs anomalies at warn level.
type LogReporter struct {
	Logger *log.Logger
}

// Report implements [Reporter].
func (r LogReporter) Report(a Anomaly) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn("layout anomaly", "kind", a.Kind(), "subject", a.Subject(), "detail", a.String())
}

// MultiReporter fans out to several reporters.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(a Anomaly) {
		for _, r := range reporters {
			if r != nil {
				r.Report(a)
			}
		}
	})
}

// =============================================================================
// Scan
// =============================================================================

// Scan reports malformed dates and dangling or asymmetric relations in
// members. Each problem is reported once, in member order.
func Scan(members []family.Member, r Reporter) {
	if r == nil {
		return
	}
	idx := family.Index(members)
	for _, m := range members {
		if family.MalformedDate(m.BirthDate) {
			r.Report(MalformedDateAnomaly{MemberID: m.ID, Field: "birthDate", Value: m.BirthDate})
		}
		if family.MalformedDate(m.DeathDate) {
			r.Report(MalformedDateAnomaly{MemberID: m.ID, Field: "deathDate", Value: m.DeathDate})
		}

		rel := m.Relations
		for _, ref := range []struct{ field, id string }{
			{"fatherId", rel.FatherID},
			{"motherId", rel.MotherID},
		} {
			if ref.id == "" {
				continue
			}
			if _, ok := idx[ref.id]; !ok {
				r.Report(DataIntegrityAnomaly{MemberID: m.ID, Relation: ref.field, TargetID: ref.id, Reason: "does not exist"})
			}
		}

		if rel.SpouseID != "" {
			spouse, ok := idx[rel.SpouseID]
			switch {
			case !ok:
				r.Report(DataIntegrityAnomaly{MemberID: m.ID, Relation: "spouseId", TargetID: rel.SpouseID, Reason: "does not exist"})
			case spouse.Relations.SpouseID != m.ID:
				r.Report(DataIntegrityAnomaly{MemberID: m.ID, Relation: "spouseId", TargetID: rel.SpouseID, Reason: "is not linked back"})
			}
		}

		for _, cid := range rel.ChildrenIDs {
			switch _, ok := idx[cid]; {
			case cid == m.ID:
				r.Report(DataIntegrityAnomaly{MemberID: m.ID, Relation: "childrenIds", TargetID: cid, Reason: "is the member itself"})
			case !ok:
				r.Report(DataIntegrityAnomaly{MemberID: m.ID, Relation: "childrenIds", TargetID: cid, Reason: "does not exist"})
			}
		}
	}
}
