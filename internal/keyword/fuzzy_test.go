package keyword

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
		kind  MatchKind
	}{
		{"exact", "sofa", "sofa", 1.0, MatchExact},
		{"exact case and space folded", "  SOFA ", "Sofa", 1.0, MatchExact},
		{"both empty", "", "", 1.0, MatchExact},
		{"prefix", "sof", "Sofa Bed", 0.95, MatchPrefix},
		{"substring", "leather", "Modern Leather Sofa", 0.85, MatchSubstring},
		{"substring mid-word", "ather", "leather", 0.85, MatchSubstring},
		{"similar", "lamp", "lamb", 0.75 * 0.7, MatchSimilar},
		{"similar long word", "wardrobr", "wardrobe", 0.875 * 0.7, MatchSimilar},
		{"similarity at threshold is rejected", "sofa", "sopha", 0, MatchNone},
		{"unrelated", "chair", "lamp", 0, MatchNone},
		{"empty query", "", "sofa", 0, MatchNone},
		{"blank query", "   ", "sofa", 0, MatchNone},
		{"empty text", "sofa", "", 0, MatchNone},
	}

	rules := DefaultFuzzyRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, got := rules.Match(tt.query, tt.text)
			if !approxEqual(got, tt.want) {
				t.Errorf("Match(%q, %q) score = %v, want %v", tt.query, tt.text, got, tt.want)
			}
			if kind != tt.kind {
				t.Errorf("Match(%q, %q) kind = %s, want %s", tt.query, tt.text, kind, tt.kind)
			}
			if s := FuzzyScore(tt.query, tt.text); !approxEqual(s, got) {
				t.Errorf("FuzzyScore disagrees with Match: %v vs %v", s, got)
			}
		})
	}
}

func TestFuzzyScore_OneOnlyForEquality(t *testing.T) {
	pairs := [][2]string{
		{"sofa", "sofa"}, {"Sofa", "SOFA"}, {"sofa", "sofas"}, {"sofas", "sofa"},
		{"leather sofa", "Modern Leather Sofa"}, {"lamp", "lamb"}, {"", "x"}, {"x", ""},
	}
	for _, p := range pairs {
		equal := normalize(p[0]) == normalize(p[1])
		if got := FuzzyScore(p[0], p[1]); (got == 1.0) != equal {
			t.Errorf("FuzzyScore(%q, %q) = %v, folded equality %v", p[0], p[1], got, equal)
		}
	}
}

func TestFuzzyScore_StructuralOrdering(t *testing.T) {
	exact := FuzzyScore("sofa", "sofa")
	prefix := FuzzyScore("sofa", "sofa bed")
	substring := FuzzyScore("sofa", "leather sofa bed")
	if exact < prefix || prefix < substring {
		t.Errorf("expected exact >= prefix >= substring, got %v, %v, %v", exact, prefix, substring)
	}
	if similar := FuzzyScore("sofa", "sofw"); similar >= substring {
		t.Errorf("edit-distance match %v should rank below substring %v", similar, substring)
	}
}

func TestFuzzyScore_BoundedToUnitInterval(t *testing.T) {
	inputs := []string{"", "a", "sofa", "Modern Leather Sofa", "ÉCLAIR lamp", "zzzzzzzz"}
	for _, q := range inputs {
		for _, text := range inputs {
			if s := FuzzyScore(q, text); s < 0 || s > 1 {
				t.Errorf("FuzzyScore(%q, %q) = %v outside [0,1]", q, text, s)
			}
		}
	}
}

func TestWordPrefixMatch(t *testing.T) {
	if !wordPrefixMatch("lea", "modern leather sofa") {
		t.Error("expected word prefix match for lea")
	}
	if wordPrefixMatch("ther", "modern leather sofa") {
		t.Error("mid-word text is not a word prefix")
	}
	if wordPrefixMatch("", "modern") {
		t.Error("empty query never matches")
	}
}

func TestFuzzyRules_Custom(t *testing.T) {
	rules := FuzzyRules{PrefixScore: 0.5}
	rules.ApplyDefaults()
	if got := rules.Score("sof", "sofa"); got != 0.5 {
		t.Errorf("custom prefix score: got %v, want 0.5", got)
	}
	if rules.ExactScore != 1.0 || rules.SimilarityDiscount != 0.7 {
		t.Errorf("defaults not applied: %+v", rules)
	}
}

func TestMatchKind_String(t *testing.T) {
	tests := map[MatchKind]string{
		MatchNone:       "none",
		MatchSimilar:    "similar",
		MatchWordPrefix: "word_prefix",
		MatchSubstring:  "substring",
		MatchPrefix:     "prefix",
		MatchExact:      "exact",
		MatchKind(99):   "unknown",
	}
	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("MatchKind(%d).String() = %q, want %q", int(kind), kind.String(), want)
		}
	}
}
