package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/core/coretest"
	"github.com/markdave123-py/dataroom/internal/core/rag"
	"github.com/markdave123-py/dataroom/internal/models"
	"github.com/markdave123-py/dataroom/internal/services"
)

func newChatHandler(store *coretest.FakeStore, embedder *coretest.FakeEmbedder, llm *coretest.FakeLLM) *ChatHandler {
	svc := services.NewChatService(store, rag.NewAssembler(store, embedder), rag.NewGenerator(llm))
	return NewChatHandler(svc)
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.PostChat(rec, req)
	return rec
}

func TestPostChatValidation(t *testing.T) {
	h := newChatHandler(&coretest.FakeStore{}, &coretest.FakeEmbedder{}, &coretest.FakeLLM{})

	t.Run("invalid JSON", func(t *testing.T) {
		rec := postChat(t, h, "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing message", func(t *testing.T) {
		rec := postChat(t, h, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("whitespace-only message", func(t *testing.T) {
		rec := postChat(t, h, `{"message": "   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostChatProviderUnavailable(t *testing.T) {
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) {
			return []models.Document{{ID: "d1", Title: "Doc", Content: "text"}}, nil
		},
	}
	llm := &coretest.FakeLLM{GenerateFn: func(context.Context, string, string) (string, error) {
		return "", core.ErrProviderUnavailable
	}}

	rec := postChat(t, newChatHandler(store, &coretest.FakeEmbedder{}, llm), `{"message": "hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "API key")
}

func TestPostChatSuccess(t *testing.T) {
	store := &coretest.FakeStore{
		ListDocumentsFn: func(context.Context) ([]models.Document, error) {
			return []models.Document{{ID: "d1", Title: "Doc", Content: "text"}}, nil
		},
	}
	llm := &coretest.FakeLLM{GenerateFn: func(context.Context, string, string) (string, error) {
		return "hello [1]\nCITATIONS: [{\"index\": 1, \"docId\": \"d1\", \"docTitle\": \"Doc\"}]", nil
	}}

	rec := postChat(t, newChatHandler(store, &coretest.FakeEmbedder{}, llm), `{"message": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply services.ChatReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "hello [1]", reply.Content)
	require.Len(t, reply.Citations, 1)
	assert.Equal(t, "d1", reply.Citations[0].DocID)
	assert.NotEmpty(t, reply.ID)
}

func TestPostChatEmptyDataroom(t *testing.T) {
	store := &coretest.FakeStore{}
	rec := postChat(t, newChatHandler(store, &coretest.FakeEmbedder{}, &coretest.FakeLLM{}), `{"message": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply services.ChatReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(t, reply.Content, "no documents in the dataroom")
	assert.Empty(t, reply.Citations)
}

func TestGetMessages(t *testing.T) {
	store := &coretest.FakeStore{
		ListChatMessagesFn: func(context.Context) ([]models.ChatMessage, error) {
			return []models.ChatMessage{
				{ID: "m1", Role: models.RoleUser, Content: "q"},
				{ID: "m2", Role: models.RoleAssistant, Content: "a", Citations: []models.Citation{{Index: 1, DocID: "d1", DocTitle: "Doc"}}},
			}, nil
		},
	}
	h := newChatHandler(store, &coretest.FakeEmbedder{}, &coretest.FakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/messages", nil)
	rec := httptest.NewRecorder()
	h.GetMessages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var messages []models.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "m2", messages[1].ID)
	require.Len(t, messages[1].Citations, 1)
}

func TestClearMessages(t *testing.T) {
	cleared := false
	store := &coretest.FakeStore{
		ClearChatMessagesFn: func(context.Context) error {
			cleared = true
			return nil
		},
	}
	h := newChatHandler(store, &coretest.FakeEmbedder{}, &coretest.FakeLLM{})

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/messages", nil)
	rec := httptest.NewRecorder()
	h.ClearMessages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cleared)
}
