package model

// Tip is one entry of the embedded eco tips catalog. The yaml tags bind the
// markdown frontmatter.
type Tip struct {
	Slug        string `json:"slug" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Savings     string `json:"savings" yaml:"savings"` // e.g. "Save 500 kg CO₂/year"
	Difficulty  string `json:"difficulty" yaml:"difficulty"`
	Order       int    `json:"-" yaml:"order"`
	Content     string `json:"-" yaml:"-"`
	HTMLContent string `json:"html,omitempty" yaml:"-"`
}
