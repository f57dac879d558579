package rag

import (
	"math"
	"sort"

	"github.com/markdave123-py/dataroom/internal/models"
)

// Ranked is a context candidate annotated with its similarity score.
type Ranked struct {
	models.SectionContext
	Score float64
}

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. If either vector has zero norm the similarity is undefined and 0
// is returned instead of dividing by zero. Vectors of unequal length are
// compared over their common prefix.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector and returns the
// min(topK, len(candidates)) best, descending by score. The sort is stable:
// candidates with equal scores keep their input order. Inputs are not
// mutated.
func Rank(query []float32, candidates []models.SectionContext, topK int) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Ranked{
			SectionContext: c,
			Score:          CosineSimilarity(query, c.Embedding),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topK < 0 {
		topK = 0
	}
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}
