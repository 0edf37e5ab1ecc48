package matching

import "strings"

// categoryFamilies is the fixed, case-insensitive, symmetric relatedness
// table from spec.md §4.2. The table is kept verbatim, including its
// documented over-match of "Supplies"/"Emergency" under Food — see
// spec.md §9 Open Questions.
var categoryFamilies = map[string][]string{
	"medical":   {"health", "firstaid", "medicine", "pharmaceutical"},
	"food":      {"nutrition", "supplies", "rations", "emergency"},
	"shelter":   {"housing", "tents", "blankets", "bedding"},
	"water":     {"hydration", "sanitation", "hygiene"},
	"equipment": {"tools", "gear", "machinery"},
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// CanonicalCategory exposes the same case-insensitive normalization
// used by the category-family table, so the Dashboard's per-category
// aggregation keys never disagree with match-time category scoring.
func CanonicalCategory(c string) string {
	return normalizeCategory(c)
}

// categoriesExactMatch reports whether a and b are the same category,
// case-insensitively.
func categoriesExactMatch(a, b string) bool {
	return normalizeCategory(a) == normalizeCategory(b)
}

// categoriesRelated reports whether a and b belong to the same family,
// including either string being the family key itself. Unknown
// categories are only exact-matchable.
func categoriesRelated(a, b string) bool {
	na, nb := normalizeCategory(a), normalizeCategory(b)
	for family, members := range categoryFamilies {
		if inFamily(family, members, na) && inFamily(family, members, nb) {
			return true
		}
	}
	return false
}

func inFamily(family string, members []string, c string) bool {
	if c == family {
		return true
	}
	for _, m := range members {
		if c == m {
			return true
		}
	}
	return false
}

// categoryScore returns the category sub-score contribution and whether
// the pair is eligible at all (a hard cut on zero per spec.md §4.2).
func categoryScore(needCategory, supplyCategory string, weight float64) (score float64, eligible bool) {
	if categoriesExactMatch(needCategory, supplyCategory) {
		return 1.0 * weight, true
	}
	if categoriesRelated(needCategory, supplyCategory) {
		return 0.5 * weight, true
	}
	return 0, false
}
