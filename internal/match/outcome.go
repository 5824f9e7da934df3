package match

// Kind classifies how the cascade settled one catalog row. Exactly one kind
// is produced per row per run.
type Kind int

const (
	// Unresolved means every tier came up empty; the row keeps its null
	// enrichment fields.
	Unresolved Kind = iota
	// Resolved means a trusted match filled the enrichment fields.
	Resolved
	// MismatchLogged means the title-only tier answered with a different
	// title; the suggestion goes to the ambiguity log for human review.
	MismatchLogged
	// FuzzyLogged means only the fuzzy search produced candidates; the best
	// one goes to the ambiguity log.
	FuzzyLogged
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case MismatchLogged:
		return "mismatch"
	case FuzzyLogged:
		return "fuzzy"
	default:
		return "unresolved"
	}
}

// Outcome is the cascade's verdict for one row. Director/Plot/BoxOffice are
// set for Resolved; Suggested/Year/Score for the two logged kinds.
type Outcome struct {
	Kind Kind

	Director  string
	Plot      string
	BoxOffice string

	CSVTitle  string
	Suggested string
	Year      string
	Score     float64
}
