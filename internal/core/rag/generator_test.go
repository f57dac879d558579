package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/dataroom/internal/core/coretest"
	"github.com/markdave123-py/dataroom/internal/models"
)

func TestRenderContexts(t *testing.T) {
	contexts := []models.SectionContext{
		{DocumentTitle: "Q3 Report", SectionTitle: "Revenue", Content: "Revenue grew 12%."},
		{DocumentTitle: "Board Notes", Content: "Next meeting in May."},
	}

	got := renderContexts(contexts)

	assert.Contains(t, got, `[1] Document: "Q3 Report" - Section: "Revenue"`)
	assert.Contains(t, got, "Revenue grew 12%.")
	// Whole-document fallback contexts have no section part in the header.
	assert.Contains(t, got, `[2] Document: "Board Notes"`)
	assert.NotContains(t, got, `[2] Document: "Board Notes" - Section:`)
	assert.Contains(t, got, "\n---\n")
}

func TestParseCitations(t *testing.T) {
	t.Run("well formed block", func(t *testing.T) {
		raw := "The revenue grew 12% [1].\nCITATIONS: [{\"index\": 1, \"docId\": \"d1\", \"sectionId\": \"s1\", \"docTitle\": \"Q3 Report\", \"sectionTitle\": \"Revenue\"}]"
		content, citations := ParseCitations(raw)
		assert.Equal(t, "The revenue grew 12% [1].", content)
		require.Len(t, citations, 1)
		assert.Equal(t, 1, citations[0].Index)
		assert.Equal(t, "d1", citations[0].DocID)
		assert.Equal(t, "Q3 Report", citations[0].DocTitle)
	})

	t.Run("no marker returns raw unchanged", func(t *testing.T) {
		content, citations := ParseCitations("just an answer")
		assert.Equal(t, "just an answer", content)
		assert.Nil(t, citations)
	})

	t.Run("invalid JSON keeps raw text untouched", func(t *testing.T) {
		raw := "answer\nCITATIONS: [{not json"
		content, citations := ParseCitations(raw)
		assert.Equal(t, raw, content)
		assert.Nil(t, citations)
	})

	t.Run("marker mid-line is ignored", func(t *testing.T) {
		raw := `the model said CITATIONS: [{"index":1,"docId":"d","docTitle":"t"}]`
		content, citations := ParseCitations(raw)
		assert.Equal(t, raw, content)
		assert.Nil(t, citations)
	})

	t.Run("last marker wins", func(t *testing.T) {
		raw := "CITATIONS: appears in prose\nreal answer\nCITATIONS: [{\"index\": 1, \"docId\": \"d\", \"docTitle\": \"t\"}]"
		content, citations := ParseCitations(raw)
		assert.Equal(t, "CITATIONS: appears in prose\nreal answer", content)
		require.Len(t, citations, 1)
	})

	t.Run("missing index defaults to position", func(t *testing.T) {
		raw := "a\nCITATIONS: [{\"docId\": \"d1\", \"docTitle\": \"t1\"}, {\"docId\": \"d2\", \"docTitle\": \"t2\"}]"
		_, citations := ParseCitations(raw)
		require.Len(t, citations, 2)
		assert.Equal(t, 1, citations[0].Index)
		assert.Equal(t, 2, citations[1].Index)
	})

	t.Run("marker at start of output", func(t *testing.T) {
		content, citations := ParseCitations(`CITATIONS: [{"index":1,"docId":"d","docTitle":"t"}]`)
		assert.Equal(t, "", content)
		require.Len(t, citations, 1)
	})

	t.Run("empty citation array", func(t *testing.T) {
		content, citations := ParseCitations("answer\nCITATIONS: []")
		assert.Equal(t, "answer", content)
		assert.NotNil(t, citations)
		assert.Len(t, citations, 0)
	})
}

func TestGeneratorGenerate(t *testing.T) {
	contexts := []models.SectionContext{
		{DocumentID: "d1", DocumentTitle: "Report", SectionID: "s1", SectionTitle: "Intro", Content: "hello"},
	}

	t.Run("parses citations from model output", func(t *testing.T) {
		llm := &coretest.FakeLLM{GenerateFn: func(_ context.Context, system, user string) (string, error) {
			assert.Contains(t, system, "CITATIONS")
			assert.Contains(t, user, "User question: what?")
			assert.Contains(t, user, `[1] Document: "Report"`)
			return "answer [1]\nCITATIONS: [{\"index\": 1, \"docId\": \"d1\", \"docTitle\": \"Report\"}]", nil
		}}

		res, err := NewGenerator(llm).Generate(context.Background(), "what?", contexts)
		require.NoError(t, err)
		assert.Equal(t, "answer [1]", res.Content)
		require.Len(t, res.Citations, 1)
		assert.Equal(t, "d1", res.Citations[0].DocID)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		wantErr := errors.New("upstream down")
		llm := &coretest.FakeLLM{GenerateFn: func(context.Context, string, string) (string, error) {
			return "", wantErr
		}}
		_, err := NewGenerator(llm).Generate(context.Background(), "q", contexts)
		assert.ErrorIs(t, err, wantErr)
	})
}
