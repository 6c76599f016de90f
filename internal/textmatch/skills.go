package textmatch

import (
	"regexp"
	"strings"
)

// Skill maps a skill key to the alias phrases that count as a mention.
type Skill struct {
	Key     string
	Aliases []string
}

// SkillResult is the outcome of scanning one text blob: a fixed-order 0/1
// flag vector (one per vocabulary entry) plus the matched keys in
// vocabulary order.
type SkillResult struct {
	Matched []string
	Flags   []int
}

// Joined returns the matched skill keys joined with the canonical delimiter.
func (r SkillResult) Joined() string {
	return strings.Join(r.Matched, "|")
}

// Count returns the number of matched skills.
func (r SkillResult) Count() int {
	return len(r.Matched)
}

// aliasMatcher is one compiled alias. Most aliases match over the normalized
// text; aliases whose punctuation is part of the token itself (like "c++")
// match over lowercased raw text instead, because normalization would strip
// them down to an ambiguous fragment.
type aliasMatcher struct {
	re  *regexp.Regexp
	raw bool
}

// SkillExtractor scans free text against a fixed ordered skill vocabulary
// using word-boundary-aware alias matching.
type SkillExtractor struct {
	skills   []Skill
	patterns [][]aliasMatcher
}

// NewSkillExtractor compiles the alias patterns for a vocabulary. Iteration
// always follows the declared order, which fixes flag and column ordering.
func NewSkillExtractor(skills []Skill) *SkillExtractor {
	e := &SkillExtractor{skills: skills}
	for _, skill := range skills {
		var compiled []aliasMatcher
		for _, alias := range skill.Aliases {
			if m := aliasPattern(alias); m.re != nil {
				compiled = append(compiled, m)
			}
		}
		e.patterns = append(e.patterns, compiled)
	}
	return e
}

// aliasPattern builds a pattern that matches the alias only when it is not
// adjacent to another alphanumeric character. Aliases normalize like the
// scanned text, so "machine-learning" and "machine learning" collapse to the
// same form; internal spaces match any whitespace run. A single-token alias
// whose normalization discards punctuation ("c++" -> "c") instead keeps the
// punctuation and is matched verbatim over raw lowercase text.
func aliasPattern(alias string) aliasMatcher {
	norm := Normalize(alias)
	if norm == "" {
		return aliasMatcher{}
	}

	lowered := strings.ToLower(strings.TrimSpace(alias))
	if !strings.Contains(norm, " ") && lowered != norm {
		return aliasMatcher{re: boundaryPattern(regexp.QuoteMeta(lowered)), raw: true}
	}

	quoted := strings.ReplaceAll(regexp.QuoteMeta(norm), " ", `\s+`)
	return aliasMatcher{re: boundaryPattern(quoted)}
}

func boundaryPattern(quoted string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^a-z0-9])` + quoted + `(?:[^a-z0-9]|$)`)
}

// Keys returns the vocabulary keys in declared order.
func (e *SkillExtractor) Keys() []string {
	keys := make([]string, len(e.skills))
	for i, skill := range e.skills {
		keys[i] = skill.Key
	}
	return keys
}

// Size returns the number of vocabulary entries.
func (e *SkillExtractor) Size() int {
	return len(e.skills)
}

// Extract scans a text blob and returns the flag vector and matched keys.
func (e *SkillExtractor) Extract(text string) SkillResult {
	norm := Normalize(text)
	lowered := strings.ToLower(text)
	result := SkillResult{Flags: make([]int, len(e.skills))}

	for i, compiled := range e.patterns {
		for _, m := range compiled {
			target := norm
			if m.raw {
				target = lowered
			}
			if m.re.MatchString(target) {
				result.Flags[i] = 1
				result.Matched = append(result.Matched, e.skills[i].Key)
				break
			}
		}
	}
	return result
}

// Empty returns an all-zero result sized to the vocabulary, used when detail
// enrichment fails.
func (e *SkillExtractor) Empty() SkillResult {
	return SkillResult{Flags: make([]int, len(e.skills))}
}
