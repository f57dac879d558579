package core

import (
	"context"

	"github.com/markdave123-py/dataroom/internal/models"
)

// Store defines all persistence operations the service needs.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type Store interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, doc *models.Document) error
	UpdateDocument(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id string) error

	ListSections(ctx context.Context, documentID string) ([]models.DocumentSection, error)
	CreateSection(ctx context.Context, section *models.DocumentSection) error
	// SetSectionEmbedding is the sole writer of the embedding column.
	SetSectionEmbedding(ctx context.Context, sectionID string, embedding []float32) error
	// ListEmbeddedSections returns every section carrying a non-null
	// embedding, joined with its owning document's title, in document store
	// order then section position.
	ListEmbeddedSections(ctx context.Context) ([]models.SectionContext, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, cat *models.Category) error
	UpdateCategory(ctx context.Context, cat *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	AppendChatMessage(ctx context.Context, msg *models.ChatMessage) error
	ClearChatMessages(ctx context.Context) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
