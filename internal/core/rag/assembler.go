package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/metrics"
	"github.com/markdave123-py/dataroom/internal/models"
)

// DefaultTopK is how many contexts the assembler hands to the generator.
const DefaultTopK = 5

// Assembler decides which document sections ground a chat answer.
//
// Two-tier policy: when any section in the store carries an embedding, the
// question is embedded and the topK most similar sections win. When no
// embedding exists yet (embedding is a separate, per-document operation that
// may simply not have been run), the first topK documents are used whole,
// unranked. The pipeline degrades rather than fails.
type Assembler struct {
	store    core.Store
	embedder core.EmbeddingProvider
	topK     int
}

func NewAssembler(store core.Store, embedder core.EmbeddingProvider) *Assembler {
	return &Assembler{store: store, embedder: embedder, topK: DefaultTopK}
}

// Assemble selects grounding contexts for the question. docs is the full
// document list, already fetched by the caller (which needs it for the
// zero-document fast path). An empty docs yields an empty context list.
func (a *Assembler) Assemble(ctx context.Context, question string, docs []models.Document) ([]models.SectionContext, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	sections, err := a.store.ListEmbeddedSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list embedded sections: %w", err)
	}

	if len(sections) == 0 {
		return a.fallbackContexts(docs), nil
	}

	start := time.Now()
	queryVec, err := a.embedder.Embed(ctx, question)
	metrics.ObserveStage("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}

	ranked := Rank(queryVec, sections, a.topK)
	out := make([]models.SectionContext, len(ranked))
	for i, r := range ranked {
		out[i] = r.SectionContext
	}
	return out, nil
}

// fallbackContexts uses the first topK documents whole, with no section
// identity and no ranking.
func (a *Assembler) fallbackContexts(docs []models.Document) []models.SectionContext {
	n := a.topK
	if len(docs) < n {
		n = len(docs)
	}
	out := make([]models.SectionContext, 0, n)
	for _, d := range docs[:n] {
		out = append(out, models.SectionContext{
			DocumentID:    d.ID,
			DocumentTitle: d.Title,
			Content:       d.Content,
		})
	}
	return out
}
