package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/metrics"
	"github.com/markdave123-py/dataroom/internal/models"
)

// EmbedService computes and stores document embeddings on demand. Embedding is
// an explicit per-document operation, not an ingest-time side effect.
type EmbedService struct {
	store    core.Store
	embedder core.EmbeddingProvider
	log      *logger.Logger
}

func NewEmbedService(store core.Store, embedder core.EmbeddingProvider) *EmbedService {
	return &EmbedService{store: store, embedder: embedder, log: logger.New("embed")}
}

// EmbedDocument embeds the document's content into its first section, creating
// that section when the document has none yet. Re-running overwrites the
// stored vector. A document with empty content is a successful no-op.
func (s *EmbedService) EmbedDocument(ctx context.Context, documentID string) error {
	doc, err := s.store.GetDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return core.ErrNotFound
	}
	if doc.Content == "" {
		s.log.Info("skipping embed for empty document", "document_id", documentID)
		return nil
	}

	start := time.Now()
	vec, err := s.embedder.Embed(ctx, doc.Content)
	metrics.ObserveStage("embedding", time.Since(start))
	if err != nil {
		return err
	}

	sections, err := s.store.ListSections(ctx, documentID)
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}

	var targetID string
	if len(sections) == 0 {
		section := &models.DocumentSection{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Title:      doc.Title,
			Content:    doc.Content,
			Position:   0,
		}
		if err := s.store.CreateSection(ctx, section); err != nil {
			return fmt.Errorf("create section: %w", err)
		}
		targetID = section.ID
	} else {
		targetID = sections[0].ID
	}

	if err := s.store.SetSectionEmbedding(ctx, targetID, vec); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}

	s.log.Info("document embedded", "document_id", documentID, "section_id", targetID, "dim", len(vec))
	return nil
}
