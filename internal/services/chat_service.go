package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/core/rag"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/models"
)

const noDocumentsReply = "There are no documents in the dataroom yet. Please add some documents first, and then I can help you answer questions about them."

// ChatReply is what the chat endpoint returns to the client.
type ChatReply struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Citations []models.Citation `json:"citations"`
}

// ChatService runs the retrieval pipeline for one user question and keeps the
// chat log consistent with what the user saw.
type ChatService struct {
	store     core.Store
	assembler *rag.Assembler
	generator *rag.Generator
	log       *logger.Logger
}

func NewChatService(store core.Store, assembler *rag.Assembler, generator *rag.Generator) *ChatService {
	return &ChatService{
		store:     store,
		assembler: assembler,
		generator: generator,
		log:       logger.New("chat"),
	}
}

// Handle answers a single question. The user's message is persisted in every
// outcome that produces a reply; the assistant's message is persisted only
// when the model actually generated it (the canned empty-dataroom reply is
// not part of the conversation history the model would ever need).
func (s *ChatService) Handle(ctx context.Context, message string) (*ChatReply, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	if len(docs) == 0 {
		if err := s.appendMessage(ctx, models.RoleUser, message, nil); err != nil {
			return nil, err
		}
		return &ChatReply{
			ID:        uuid.NewString(),
			Content:   noDocumentsReply,
			Citations: []models.Citation{},
		}, nil
	}

	contexts, err := s.assembler.Assemble(ctx, message, docs)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, message, contexts)
	if err != nil {
		return nil, err
	}

	if err := s.appendMessage(ctx, models.RoleUser, message, nil); err != nil {
		return nil, err
	}

	assistantID := uuid.NewString()
	assistant := &models.ChatMessage{
		ID:        assistantID,
		Role:      models.RoleAssistant,
		Content:   result.Content,
		Citations: result.Citations,
	}
	if err := s.store.AppendChatMessage(ctx, assistant); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	citations := result.Citations
	if citations == nil {
		citations = []models.Citation{}
	}
	s.log.Info("chat answered", "contexts", len(contexts), "citations", len(citations))

	return &ChatReply{
		ID:        assistantID,
		Content:   result.Content,
		Citations: citations,
	}, nil
}

// Messages returns the full chat log, oldest first.
func (s *ChatService) Messages(ctx context.Context) ([]models.ChatMessage, error) {
	return s.store.ListChatMessages(ctx)
}

// Clear wipes the chat log.
func (s *ChatService) Clear(ctx context.Context) error {
	return s.store.ClearChatMessages(ctx)
}

func (s *ChatService) appendMessage(ctx context.Context, role, content string, citations []models.Citation) error {
	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Citations: citations,
	}
	if err := s.store.AppendChatMessage(ctx, msg); err != nil {
		return fmt.Errorf("append %s message: %w", role, err)
	}
	return nil
}
