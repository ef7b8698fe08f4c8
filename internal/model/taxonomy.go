package model

// TaxonomyCategory is one node of the external taxonomy. Categories are
// loaded once at process start and immutable thereafter.
type TaxonomyCategory struct {
	ID              string
	Label           string
	ParentID        string // empty for top-level branches
	ValidAttributes []string
}
