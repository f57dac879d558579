package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/dataroom/internal/core/coretest"
	"github.com/markdave123-py/dataroom/internal/core/rag"
	"github.com/markdave123-py/dataroom/internal/models"
)

func newChatService(store *coretest.FakeStore, embedder *coretest.FakeEmbedder, llm *coretest.FakeLLM) *ChatService {
	return NewChatService(store, rag.NewAssembler(store, embedder), rag.NewGenerator(llm))
}

func TestChatHandleEmptyDataroom(t *testing.T) {
	var appended []models.ChatMessage
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) { return nil, nil },
		AppendChatMessageFn: func(_ context.Context, msg *models.ChatMessage) error {
			appended = append(appended, *msg)
			return nil
		},
	}
	embedder := &coretest.FakeEmbedder{}
	llm := &coretest.FakeLLM{}

	reply, err := newChatService(store, embedder, llm).Handle(context.Background(), "anything in here?")
	require.NoError(t, err)

	assert.Equal(t, noDocumentsReply, reply.Content)
	assert.NotEmpty(t, reply.ID)
	assert.NotNil(t, reply.Citations)
	assert.Empty(t, reply.Citations)

	// Only the user's message lands in the log; the canned reply does not.
	require.Len(t, appended, 1)
	assert.Equal(t, models.RoleUser, appended[0].Role)
	assert.Equal(t, "anything in here?", appended[0].Content)

	assert.Zero(t, embedder.Calls)
	assert.Zero(t, llm.Calls)
}

func TestChatHandleFullPipeline(t *testing.T) {
	var appended []models.ChatMessage
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) {
			return []models.Document{{ID: "d1", Title: "Report", Content: "numbers"}}, nil
		},
		ListEmbeddedSectionsFn: func(context.Context) ([]models.SectionContext, error) {
			return []models.SectionContext{
				{DocumentID: "d1", DocumentTitle: "Report", SectionID: "s1", SectionTitle: "Numbers", Content: "numbers", Embedding: []float32{1, 0}},
			}, nil
		},
		AppendChatMessageFn: func(_ context.Context, msg *models.ChatMessage) error {
			appended = append(appended, *msg)
			return nil
		},
	}
	embedder := &coretest.FakeEmbedder{EmbedFn: func(context.Context, string) ([]float32, error) {
		return []float32{1, 0}, nil
	}}
	llm := &coretest.FakeLLM{GenerateFn: func(_ context.Context, _, user string) (string, error) {
		assert.Contains(t, user, `[1] Document: "Report" - Section: "Numbers"`)
		return "See the report [1].\nCITATIONS: [{\"index\": 1, \"docId\": \"d1\", \"sectionId\": \"s1\", \"docTitle\": \"Report\", \"sectionTitle\": \"Numbers\"}]", nil
	}}

	reply, err := newChatService(store, embedder, llm).Handle(context.Background(), "how are the numbers?")
	require.NoError(t, err)

	assert.Equal(t, "See the report [1].", reply.Content)
	require.Len(t, reply.Citations, 1)
	assert.Equal(t, "s1", reply.Citations[0].SectionID)

	// User message first, then the assistant's; the reply ID is the
	// assistant message's ID.
	require.Len(t, appended, 2)
	assert.Equal(t, models.RoleUser, appended[0].Role)
	assert.Equal(t, models.RoleAssistant, appended[1].Role)
	assert.Equal(t, appended[1].ID, reply.ID)
	assert.Equal(t, reply.Content, appended[1].Content)
	require.Len(t, appended[1].Citations, 1)
}

func TestChatHandleUnparsableCitations(t *testing.T) {
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) {
			return []models.Document{{ID: "d1", Title: "Doc", Content: "text"}}, nil
		},
		ListEmbeddedSectionsFn: func(context.Context) ([]models.SectionContext, error) { return nil, nil },
	}
	raw := "answer\nCITATIONS: not json at all"
	llm := &coretest.FakeLLM{GenerateFn: func(context.Context, string, string) (string, error) {
		return raw, nil
	}}

	reply, err := newChatService(store, &coretest.FakeEmbedder{}, llm).Handle(context.Background(), "q")
	require.NoError(t, err)

	// Fail-soft: the raw text survives and the citation list is empty, not nil.
	assert.Equal(t, raw, reply.Content)
	assert.NotNil(t, reply.Citations)
	assert.Empty(t, reply.Citations)
}

func TestChatHandleProviderError(t *testing.T) {
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) {
			return []models.Document{{ID: "d1", Title: "Doc", Content: "text"}}, nil
		},
		ListEmbeddedSectionsFn: func(context.Context) ([]models.SectionContext, error) { return nil, nil },
		AppendChatMessageFn: func(context.Context, *models.ChatMessage) error {
			t.Fatal("nothing should be persisted when generation fails")
			return nil
		},
	}
	llm := &coretest.FakeLLM{GenerateFn: func(context.Context, string, string) (string, error) {
		return "", assert.AnError
	}}

	_, err := newChatService(store, &coretest.FakeEmbedder{}, llm).Handle(context.Background(), "q")
	assert.ErrorIs(t, err, assert.AnError)
}
