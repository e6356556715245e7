package stats

// Well-known family tags. Templates may carry other families; anything not
// listed here still classifies, it just falls through to the mixed bucket.
const (
	FamilyTheory   = "theory"
	FamilyPractice = "practice"
)

// Path classifications, ordered from most to least specific.
const (
	ClassEmpty        = "empty path"
	ClassTheoryOnly   = "theory path"
	ClassPracticeOnly = "practice path"
	ClassTheoryMixed  = "mixed theory and practice path"
	ClassMixed        = "mixed path"
)

// Classify maps the set of involved families to a path classification.
// The lookup order is fixed so results are deterministic:
//
//  1. no families at all -> ClassEmpty
//  2. exactly {theory} -> ClassTheoryOnly
//  3. exactly {practice} -> ClassPracticeOnly
//  4. both theory and practice present (other families allowed) -> ClassTheoryMixed
//  5. anything else -> ClassMixed
func Classify(families []string) string {
	if len(families) == 0 {
		return ClassEmpty
	}

	set := make(map[string]bool, len(families))
	for _, f := range families {
		set[f] = true
	}

	switch {
	case len(set) == 1 && set[FamilyTheory]:
		return ClassTheoryOnly
	case len(set) == 1 && set[FamilyPractice]:
		return ClassPracticeOnly
	case set[FamilyTheory] && set[FamilyPractice]:
		return ClassTheoryMixed
	default:
		return ClassMixed
	}
}
