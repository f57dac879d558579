package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/metrics"
	"github.com/markdave123-py/dataroom/internal/models"
)

// citationMarker prefixes the machine-readable citation block the model is
// instructed to emit as the last line of its output.
const citationMarker = "CITATIONS:"

const systemPrompt = `You are an AI assistant for a dataroom application. Your role is to answer questions about the documents in the dataroom.

When answering questions:
1. Base your answers ONLY on the provided document contexts
2. Be specific and cite the sources by referencing their index numbers in square brackets [1], [2], etc.
3. If the information is not available in the documents, say so clearly
4. Provide concise but complete answers
5. Format your response in a readable way using markdown if needed

IMPORTANT: At the end of your response, provide a JSON array of citations in this exact format on a new line starting with "CITATIONS:":
CITATIONS: [{"index": 1, "docId": "...", "sectionId": "...", "docTitle": "...", "sectionTitle": "..."}]

Only include citations for sources you actually referenced in your answer.`

// Generator turns a question plus grounding contexts into an answer with a
// structured citation list.
type Generator struct {
	llm core.LLMProvider
}

func NewGenerator(llm core.LLMProvider) *Generator {
	return &Generator{llm: llm}
}

// Result is the parsed model output.
type Result struct {
	Content   string
	Citations []models.Citation
}

// Generate renders the contexts into numbered blocks, calls the model and
// parses the trailing citation block. Provider errors propagate unchanged; a
// malformed citation block never fails the request (the raw text is kept and
// the citation list is empty).
func (g *Generator) Generate(ctx context.Context, question string, contexts []models.SectionContext) (*Result, error) {
	start := time.Now()
	raw, err := g.llm.Generate(ctx, systemPrompt, buildUserPrompt(question, contexts))
	metrics.ObserveStage("generation", time.Since(start))
	if err != nil {
		return nil, err
	}

	content, citations := ParseCitations(raw)
	return &Result{Content: content, Citations: citations}, nil
}

func buildUserPrompt(question string, contexts []models.SectionContext) string {
	return fmt.Sprintf(`Here are the relevant documents from the dataroom:

%s

User question: %s

Please answer the question based on the documents above. Remember to include the CITATIONS array at the end.`, renderContexts(contexts), question)
}

// renderContexts numbers each context so the model's bracketed references
// line up with the citation indices.
func renderContexts(contexts []models.SectionContext) string {
	blocks := make([]string, 0, len(contexts))
	for i, c := range contexts {
		header := fmt.Sprintf("[%d] Document: %q", i+1, c.DocumentTitle)
		if c.SectionTitle != "" {
			header += fmt.Sprintf(" - Section: %q", c.SectionTitle)
		}
		blocks = append(blocks, header+"\n"+c.Content+"\n")
	}
	return strings.Join(blocks, "\n---\n")
}

// ParseCitations splits raw model output into the displayed answer and its
// citation list. The citation block is recognised only when the LAST
// occurrence of the marker starts a line and everything after it decodes as a
// JSON citation array; otherwise the full raw text is returned with no
// citations. Entries missing an index default to their 1-based position.
func ParseCitations(raw string) (string, []models.Citation) {
	idx := strings.LastIndex(raw, citationMarker)
	if idx == -1 {
		return raw, nil
	}
	// The marker must begin a line, not appear mid-sentence.
	if idx > 0 && raw[idx-1] != '\n' {
		return raw, nil
	}

	payload := strings.TrimSpace(raw[idx+len(citationMarker):])
	var citations []models.Citation
	if err := json.Unmarshal([]byte(payload), &citations); err != nil {
		// Malformed block: keep the raw text untouched so the user still
		// sees the answer.
		return raw, nil
	}

	for i := range citations {
		if citations[i].Index == 0 {
			citations[i].Index = i + 1
		}
	}
	return strings.TrimSpace(raw[:idx]), citations
}
