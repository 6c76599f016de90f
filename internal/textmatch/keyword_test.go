package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "data scientist", Normalize("  Data   Scientist "))
	assert.Equal(t, "senior data analyst entry", Normalize("Senior Data-Analyst (Entry)"))
	assert.Equal(t, "", Normalize("  ---  "))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a \n\t b   c "))
	assert.Equal(t, "", CleanText("   "))
}

func TestGroupsExpandsVariants(t *testing.T) {
	m := NewKeywordMatcher(DefaultKeyVariants)

	groups := m.Groups("Data Scientist")
	assert.Len(t, groups, 2)
	assert.Equal(t, []string{"data"}, groups[0])
	assert.Contains(t, groups[1], "scientist")
	assert.Contains(t, groups[1], "science")

	// Unknown tokens become singleton groups
	groups = m.Groups("Quant Researcher")
	assert.Equal(t, [][]string{{"quant"}, {"researcher"}}, groups)
}

func TestMatchOrdered(t *testing.T) {
	m := NewKeywordMatcher(DefaultKeyVariants)
	groups := m.Groups("Data Analyst")

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"exact", "Data Analyst", true},
		{"with prefix and suffix", "Senior Data Analyst (Entry)", true},
		{"variant form", "Data Analytics Specialist", true},
		{"wrong order", "Analyst for Data Team", false},
		{"missing group", "Data Entry Clerk", false},
		{"empty title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.title, groups, ModeOrdered))
		})
	}
}

func TestMatchOrderedNoOverlap(t *testing.T) {
	m := NewKeywordMatcher(nil)
	groups := m.Groups("data data")

	// The second group must match after the first match ends.
	assert.False(t, m.Match("Data Specialist", groups, ModeOrdered))
	assert.True(t, m.Match("Data Data Specialist", groups, ModeOrdered))
}

func TestMatchContains(t *testing.T) {
	m := NewKeywordMatcher(DefaultKeyVariants)
	groups := m.Groups("Data Analyst")

	// Order does not matter in containment mode.
	assert.True(t, m.Match("Analyst for Data Team", groups, ModeContains))
	assert.True(t, m.Match("Business Analysis with Big Data", groups, ModeContains))
	assert.False(t, m.Match("Business Intelligence Lead", groups, ModeContains))
}

func TestMatchEmptyGroups(t *testing.T) {
	m := NewKeywordMatcher(nil)
	assert.True(t, m.Match("anything", nil, ModeOrdered))
	assert.True(t, m.Match("anything", nil, ModeContains))
}
