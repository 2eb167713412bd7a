package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey generates a key for a computed layout of the tree whose JSON
	// hashes to treeHash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes node positions.
type LayoutKeyOpts struct {
	Algorithm        string  `json:"algorithm"`
	Direction        string  `json:"direction"`
	Radial           bool    `json:"radial,omitempty"`
	FreeRoot         bool    `json:"free_root,omitempty"`
	Indent           float64 `json:"indent,omitempty"`
	InlineFirstChild bool    `json:"inline_first_child,omitempty"`
	Align            string  `json:"align,omitempty"`
	NodeSep          float64 `json:"node_sep,omitempty"`
	RankSep          float64 `json:"rank_sep,omitempty"`
	SubTreeSep       float64 `json:"subtree_sep,omitempty"`
	MindmapSep       float64 `json:"mindmap_sep,omitempty"`
	NodeWidth        float64 `json:"node_width,omitempty"`
	NodeHeight       float64 `json:"node_height,omitempty"`
	HGap             float64 `json:"hgap,omitempty"`
	VGap             float64 `json:"vgap,omitempty"`
}

// ArtifactKeyOpts holds every option that changes rendered bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Renderer string  `json:"renderer,omitempty"`
	Engine   string  `json:"engine,omitempty"`
	Links    string  `json:"links,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes inputs and options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
