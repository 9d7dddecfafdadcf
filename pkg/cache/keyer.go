package cache

// Keyer builds cache keys for the two cached stages.
type Keyer interface {
	// DiagramKey addresses a computed diagram.
	DiagramKey(membersHash string, opts DiagramKeyOpts) string

	// ArtifactKey addresses a rendered artifact of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the layout inputs besides the members.
type DiagramKeyOpts struct {
	// ConfigHash is the hash of the layout configuration.
	ConfigHash string `json:"config"`
	// Version is the store's layout version stamped on the diagram.
	Version int64 `json:"version"`
}

// ArtifactKeyOpts are the render inputs besides the diagram.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Engine  string  `json:"engine,omitempty"`
	Labels  bool    `json:"labels"`
	Padding float64 `json:"padding"`
	Title   string  `json:"title,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(membersHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", membersHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

var _ Keyer = DefaultKeyer{}
