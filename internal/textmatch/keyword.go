package textmatch

import "strings"

// MatchMode selects how keyword groups are matched against a job title.
type MatchMode int

const (
	// ModeOrdered requires groups to appear left-to-right without overlap.
	ModeOrdered MatchMode = iota
	// ModeContains requires each group to appear anywhere in the title.
	ModeContains
)

// KeywordMatcher expands a search query into token-variant groups and tests
// job titles against them.
type KeywordMatcher struct {
	variants map[string][]string
}

// NewKeywordMatcher creates a matcher with the given synonym-expansion table.
func NewKeywordMatcher(variants map[string][]string) *KeywordMatcher {
	return &KeywordMatcher{variants: variants}
}

// Groups normalizes and tokenizes a search query; each token becomes its
// variant group from the synonym table, or a singleton group.
func (m *KeywordMatcher) Groups(query string) [][]string {
	var groups [][]string
	for _, token := range strings.Fields(Normalize(query)) {
		if expanded, ok := m.variants[token]; ok {
			groups = append(groups, expanded)
		} else {
			groups = append(groups, []string{token})
		}
	}
	return groups
}

// Match reports whether the title satisfies all keyword groups under the
// given mode. An empty group list always matches.
func (m *KeywordMatcher) Match(title string, groups [][]string, mode MatchMode) bool {
	if len(groups) == 0 {
		return true
	}
	titleNorm := Normalize(title)
	if mode == ModeOrdered {
		return matchOrdered(titleNorm, groups)
	}
	return matchContains(titleNorm, groups)
}

// matchOrdered walks the groups in order; each group must match at or after
// the end of the previous group's match.
func matchOrdered(titleNorm string, groups [][]string) bool {
	searchFrom := 0
	for _, group := range groups {
		bestPos := -1
		bestLen := 0
		for _, variant := range group {
			variantNorm := Normalize(variant)
			if variantNorm == "" {
				continue
			}
			pos := strings.Index(titleNorm[searchFrom:], variantNorm)
			if pos < 0 {
				continue
			}
			pos += searchFrom
			if bestPos == -1 || pos < bestPos {
				bestPos = pos
				bestLen = len(variantNorm)
			}
		}
		if bestPos == -1 {
			return false
		}
		searchFrom = bestPos + bestLen
	}
	return true
}

// matchContains requires some variant of every group anywhere in the title.
func matchContains(titleNorm string, groups [][]string) bool {
	for _, group := range groups {
		found := false
		for _, variant := range group {
			variantNorm := Normalize(variant)
			if variantNorm != "" && strings.Contains(titleNorm, variantNorm) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
