package vectorstore

import (
	"math"
	"testing"
)

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)

	a := e.Embed("the quick brown fox")
	b := e.Embed("the quick brown fox")
	if len(a) != 64 {
		t.Fatalf("Embed() = %d dimensions, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Embed() not deterministic at index %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestHashingEmbedder_Normalized(t *testing.T) {
	e := NewHashingEmbedder(64)

	vec := e.Embed("some text worth embedding")
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("Embed() squared norm = %f, want 1.0", sum)
	}
}

func TestHashingEmbedder_EmptyText(t *testing.T) {
	e := NewHashingEmbedder(64)

	vec := e.Embed("")
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("Embed(\"\") index %d = %f, want all zeros", i, v)
		}
	}
}

func TestHashingEmbedder_SharedTokensScoreHigher(t *testing.T) {
	e := NewHashingEmbedder(64)

	query := e.Embed("cats chase mice")
	related := e.Embed("cats purr and chase mice around")
	unrelated := e.Embed("rain clouds gather over mountains")

	relatedScore, err := cosine(query, related)
	if err != nil {
		t.Fatalf("cosine() error = %v", err)
	}
	unrelatedScore, err := cosine(query, unrelated)
	if err != nil {
		t.Fatalf("cosine() error = %v", err)
	}
	if relatedScore <= unrelatedScore {
		t.Errorf("Expected overlapping text to score higher: related %f vs unrelated %f", relatedScore, unrelatedScore)
	}
}

func TestHashingEmbedder_DefaultDimensions(t *testing.T) {
	e := NewHashingEmbedder(0)
	if e.Dimensions() != 256 {
		t.Errorf("Dimensions() = %d, want default 256", e.Dimensions())
	}
}
