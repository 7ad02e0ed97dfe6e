package cache

// Keyer derives cache keys. Keys embed a SHA-256 of their inputs, so any
// change to the graph or the options yields a new key.
type Keyer interface {
	// LayoutKey keys the node positions computed for a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ExportKey keys a rendered artifact of a laid-out graph.
	ExportKey(graphHash, format string) string
}

// LayoutKeyOpts are the layout options that change positions.
type LayoutKeyOpts struct {
	Engine     string  `json:"engine"`
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
	NodeSep    float64 `json:"node_sep"`
	RankSep    float64 `json:"rank_sep"`
	Sweeps     int     `json:"sweeps"`
}

// DefaultKeyer produces keys of the form kind:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns layout:<hash>.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ExportKey returns export:<hash>.
func (DefaultKeyer) ExportKey(graphHash, format string) string {
	return hashKey("export", graphHash, format)
}
