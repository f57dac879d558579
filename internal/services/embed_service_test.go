package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/core/coretest"
	"github.com/markdave123-py/dataroom/internal/models"
)

func TestEmbedDocumentCreatesSection(t *testing.T) {
	var created *models.DocumentSection
	var embeddedID string
	var embeddedVec []float32

	store := &coretest.FakeStore{
		GetDocumentByIDFn: func(_ context.Context, id string) (*models.Document, error) {
			return &models.Document{ID: id, Title: "Report", Content: "the content"}, nil
		},
		ListSectionsFn: func(context.Context, string) ([]models.DocumentSection, error) {
			return nil, nil
		},
		CreateSectionFn: func(_ context.Context, s *models.DocumentSection) error {
			created = s
			return nil
		},
		SetSectionEmbeddingFn: func(_ context.Context, sectionID string, vec []float32) error {
			embeddedID = sectionID
			embeddedVec = vec
			return nil
		},
	}
	embedder := &coretest.FakeEmbedder{EmbedFn: func(_ context.Context, text string) ([]float32, error) {
		assert.Equal(t, "the content", text)
		return []float32{0.5, 0.5}, nil
	}}

	err := NewEmbedService(store, embedder).EmbedDocument(context.Background(), "d1")
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "d1", created.DocumentID)
	assert.Equal(t, "Report", created.Title)
	assert.Equal(t, "the content", created.Content)
	assert.Equal(t, 0, created.Position)
	assert.Equal(t, created.ID, embeddedID)
	assert.Equal(t, []float32{0.5, 0.5}, embeddedVec)
}

func TestEmbedDocumentReusesExistingSection(t *testing.T) {
	var embeddedID string
	store := &coretest.FakeStore{
		GetDocumentByIDFn: func(_ context.Context, id string) (*models.Document, error) {
			return &models.Document{ID: id, Title: "Report", Content: "text"}, nil
		},
		ListSectionsFn: func(context.Context, string) ([]models.DocumentSection, error) {
			return []models.DocumentSection{{ID: "existing", DocumentID: "d1", Position: 0}}, nil
		},
		CreateSectionFn: func(context.Context, *models.DocumentSection) error {
			t.Fatal("should not create a new section")
			return nil
		},
		SetSectionEmbeddingFn: func(_ context.Context, sectionID string, _ []float32) error {
			embeddedID = sectionID
			return nil
		},
	}

	err := NewEmbedService(store, &coretest.FakeEmbedder{}).EmbedDocument(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "existing", embeddedID)
}

func TestEmbedDocumentMissing(t *testing.T) {
	store := &coretest.FakeStore{
		GetDocumentByIDFn: func(context.Context, string) (*models.Document, error) {
			return nil, nil
		},
	}
	err := NewEmbedService(store, &coretest.FakeEmbedder{}).EmbedDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEmbedDocumentEmptyContentIsNoOp(t *testing.T) {
	store := &coretest.FakeStore{
		GetDocumentByIDFn: func(_ context.Context, id string) (*models.Document, error) {
			return &models.Document{ID: id, Title: "Empty"}, nil
		},
		SetSectionEmbeddingFn: func(context.Context, string, []float32) error {
			t.Fatal("should not store an embedding for empty content")
			return nil
		},
	}
	embedder := &coretest.FakeEmbedder{}

	err := NewEmbedService(store, embedder).EmbedDocument(context.Background(), "d1")
	require.NoError(t, err)
	assert.Zero(t, embedder.Calls)
}

func TestEmbedDocumentProviderError(t *testing.T) {
	store := &coretest.FakeStore{
		GetDocumentByIDFn: func(_ context.Context, id string) (*models.Document, error) {
			return &models.Document{ID: id, Title: "Doc", Content: "text"}, nil
		},
	}
	embedder := &coretest.FakeEmbedder{EmbedFn: func(context.Context, string) ([]float32, error) {
		return nil, core.ErrProviderUnavailable
	}}

	err := NewEmbedService(store, embedder).EmbedDocument(context.Background(), "d1")
	assert.ErrorIs(t, err, core.ErrProviderUnavailable)
}
