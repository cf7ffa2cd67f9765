package ranking

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestScoringConfig_ApplyDefaults(t *testing.T) {
	var c ScoringConfig
	c.ApplyDefaults()

	d := DefaultScoringConfig()
	if c != d {
		t.Errorf("ApplyDefaults on zero config = %+v, want %+v", c, d)
	}

	c = ScoringConfig{NameWeight: 100, PriceMissPenalty: 50}
	c.ApplyDefaults()
	if c.NameWeight != 100 || c.PriceMissPenalty != 50 {
		t.Errorf("ApplyDefaults overwrote explicit values: %+v", c)
	}
	if c.DescriptionWeight != d.DescriptionWeight {
		t.Errorf("DescriptionWeight = %v, want %v", c.DescriptionWeight, d.DescriptionWeight)
	}
	if c.Fuzzy.SimilarityThreshold != 0.6 {
		t.Errorf("Fuzzy defaults not applied: %+v", c.Fuzzy)
	}
}

func TestScoringConfig_YAML(t *testing.T) {
	data := []byte(`
name_weight: 50
featured_boost: 12
fuzzy:
  similarity_threshold: 0.5
`)
	var c ScoringConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c.ApplyDefaults()

	if c.NameWeight != 50 || c.FeaturedBoost != 12 {
		t.Errorf("yaml values not applied: %+v", c)
	}
	if c.Fuzzy.SimilarityThreshold != 0.5 || c.Fuzzy.ExactScore != 1 {
		t.Errorf("fuzzy = %+v", c.Fuzzy)
	}
	if c.InStockBoost != 5 {
		t.Errorf("InStockBoost = %v, want 5", c.InStockBoost)
	}
}
