// Package coretest provides hand-rolled fakes for the core interfaces. Each
// fake delegates to an optional function field so tests override only what
// they use.
package coretest

import (
	"context"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/models"
)

type FakeStore struct {
	ListDocumentsFn        func(ctx context.Context) ([]models.Document, error)
	GetDocumentByIDFn      func(ctx context.Context, id string) (*models.Document, error)
	CreateDocumentFn       func(ctx context.Context, doc *models.Document) error
	UpdateDocumentFn       func(ctx context.Context, doc *models.Document) error
	DeleteDocumentFn       func(ctx context.Context, id string) error
	ListSectionsFn         func(ctx context.Context, documentID string) ([]models.DocumentSection, error)
	CreateSectionFn        func(ctx context.Context, section *models.DocumentSection) error
	SetSectionEmbeddingFn  func(ctx context.Context, sectionID string, embedding []float32) error
	ListEmbeddedSectionsFn func(ctx context.Context) ([]models.SectionContext, error)
	ListCategoriesFn       func(ctx context.Context) ([]models.Category, error)
	CreateCategoryFn       func(ctx context.Context, cat *models.Category) error
	UpdateCategoryFn       func(ctx context.Context, cat *models.Category) error
	DeleteCategoryFn       func(ctx context.Context, id string) error
	ListChatMessagesFn     func(ctx context.Context) ([]models.ChatMessage, error)
	AppendChatMessageFn    func(ctx context.Context, msg *models.ChatMessage) error
	ClearChatMessagesFn    func(ctx context.Context) error
}

func (f *FakeStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	if f.ListDocumentsFn != nil {
		return f.ListDocumentsFn(ctx)
	}
	return nil, nil
}

func (f *FakeStore) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	if f.GetDocumentByIDFn != nil {
		return f.GetDocumentByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *FakeStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	if f.CreateDocumentFn != nil {
		return f.CreateDocumentFn(ctx, doc)
	}
	return nil
}

func (f *FakeStore) UpdateDocument(ctx context.Context, doc *models.Document) error {
	if f.UpdateDocumentFn != nil {
		return f.UpdateDocumentFn(ctx, doc)
	}
	return nil
}

func (f *FakeStore) DeleteDocument(ctx context.Context, id string) error {
	if f.DeleteDocumentFn != nil {
		return f.DeleteDocumentFn(ctx, id)
	}
	return nil
}

func (f *FakeStore) ListSections(ctx context.Context, documentID string) ([]models.DocumentSection, error) {
	if f.ListSectionsFn != nil {
		return f.ListSectionsFn(ctx, documentID)
	}
	return nil, nil
}

func (f *FakeStore) CreateSection(ctx context.Context, section *models.DocumentSection) error {
	if f.CreateSectionFn != nil {
		return f.CreateSectionFn(ctx, section)
	}
	return nil
}

func (f *FakeStore) SetSectionEmbedding(ctx context.Context, sectionID string, embedding []float32) error {
	if f.SetSectionEmbeddingFn != nil {
		return f.SetSectionEmbeddingFn(ctx, sectionID, embedding)
	}
	return nil
}

func (f *FakeStore) ListEmbeddedSections(ctx context.Context) ([]models.SectionContext, error) {
	if f.ListEmbeddedSectionsFn != nil {
		return f.ListEmbeddedSectionsFn(ctx)
	}
	return nil, nil
}

func (f *FakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	if f.ListCategoriesFn != nil {
		return f.ListCategoriesFn(ctx)
	}
	return nil, nil
}

func (f *FakeStore) CreateCategory(ctx context.Context, cat *models.Category) error {
	if f.CreateCategoryFn != nil {
		return f.CreateCategoryFn(ctx, cat)
	}
	return nil
}

func (f *FakeStore) UpdateCategory(ctx context.Context, cat *models.Category) error {
	if f.UpdateCategoryFn != nil {
		return f.UpdateCategoryFn(ctx, cat)
	}
	return nil
}

func (f *FakeStore) DeleteCategory(ctx context.Context, id string) error {
	if f.DeleteCategoryFn != nil {
		return f.DeleteCategoryFn(ctx, id)
	}
	return nil
}

func (f *FakeStore) ListChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	if f.ListChatMessagesFn != nil {
		return f.ListChatMessagesFn(ctx)
	}
	return nil, nil
}

func (f *FakeStore) AppendChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if f.AppendChatMessageFn != nil {
		return f.AppendChatMessageFn(ctx, msg)
	}
	return nil
}

func (f *FakeStore) ClearChatMessages(ctx context.Context) error {
	if f.ClearChatMessagesFn != nil {
		return f.ClearChatMessagesFn(ctx)
	}
	return nil
}

func (f *FakeStore) Close() error { return nil }

var _ core.Store = (*FakeStore)(nil)

type FakeEmbedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
	Calls   int
}

func (f *FakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.Calls++
	if f.EmbedFn != nil {
		return f.EmbedFn(ctx, text)
	}
	return []float32{1, 0, 0}, nil
}

var _ core.EmbeddingProvider = (*FakeEmbedder)(nil)

type FakeLLM struct {
	GenerateFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Calls      int
}

func (f *FakeLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.Calls++
	if f.GenerateFn != nil {
		return f.GenerateFn(ctx, systemPrompt, userPrompt)
	}
	return "ok", nil
}

var _ core.LLMProvider = (*FakeLLM)(nil)

type FakeObjectClient struct {
	UploadFileFn func(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	DeleteFileFn func(ctx context.Context, bucket, key string) error
	GetFileFn    func(ctx context.Context, bucket, key string) ([]byte, error)
}

func (f *FakeObjectClient) UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if f.UploadFileFn != nil {
		return f.UploadFileFn(ctx, bucket, key, data, contentType)
	}
	return "https://example.com/" + key, nil
}

func (f *FakeObjectClient) DeleteFile(ctx context.Context, bucket, key string) error {
	if f.DeleteFileFn != nil {
		return f.DeleteFileFn(ctx, bucket, key)
	}
	return nil
}

func (f *FakeObjectClient) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	if f.GetFileFn != nil {
		return f.GetFileFn(ctx, bucket, key)
	}
	return nil, nil
}

var _ core.ObjectClient = (*FakeObjectClient)(nil)
