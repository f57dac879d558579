package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/models"
)

// MaxUploadFiles bounds a single multipart upload request.
const MaxUploadFiles = 20

const uploadConcurrency = 5

// UploadedFile is one file pulled out of a multipart request.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// DocumentService owns document CRUD plus the file upload fan-out.
type DocumentService struct {
	store   core.Store
	objects core.ObjectClient
	bucket  string
	log     *logger.Logger
}

// NewDocumentService builds the service. objects may be nil when no object
// storage is configured; uploads then fail with ErrStorageUnavailable while
// plain document CRUD keeps working.
func NewDocumentService(store core.Store, objects core.ObjectClient, bucket string) *DocumentService {
	return &DocumentService{
		store:   store,
		objects: objects,
		bucket:  bucket,
		log:     logger.New("documents"),
	}
}

func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	return s.store.ListDocuments(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.store.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, core.ErrNotFound
	}
	return doc, nil
}

func (s *DocumentService) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return s.store.CreateDocument(ctx, doc)
}

func (s *DocumentService) Update(ctx context.Context, doc *models.Document) error {
	return s.store.UpdateDocument(ctx, doc)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteDocument(ctx, id)
}

func (s *DocumentService) Sections(ctx context.Context, documentID string) ([]models.DocumentSection, error) {
	return s.store.ListSections(ctx, documentID)
}

func (s *DocumentService) CreateSection(ctx context.Context, section *models.DocumentSection) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	return s.store.CreateSection(ctx, section)
}

// Upload stores each file in object storage and creates a document row for it.
// Files upload concurrently; one failure cancels the rest.
func (s *DocumentService) Upload(ctx context.Context, files []UploadedFile) ([]models.Document, error) {
	if s.objects == nil {
		return nil, core.ErrStorageUnavailable
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files in request", core.ErrInvalidInput)
	}
	if len(files) > MaxUploadFiles {
		return nil, fmt.Errorf("%w: at most %d files per upload", core.ErrInvalidInput, MaxUploadFiles)
	}

	docs := make([]models.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, f := range files {
		g.Go(func() error {
			key := fmt.Sprintf("uploads/%s-%s", uuid.NewString(), sanitizeName(f.Name))
			url, err := s.objects.UploadFile(gctx, s.bucket, key, f.Data, f.ContentType)
			if err != nil {
				return err
			}

			size := f.Size
			fileType := fileKind(f.ContentType)
			name := f.Name
			doc := models.Document{
				ID:       uuid.NewString(),
				Title:    strings.TrimSuffix(f.Name, filepath.Ext(f.Name)),
				IsFile:   true,
				FileURL:  &url,
				FileType: &fileType,
				FileName: &name,
				FileSize: &size,
			}
			if err := s.store.CreateDocument(gctx, &doc); err != nil {
				return fmt.Errorf("create document for %s: %w", f.Name, err)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("upload complete", "files", len(files))
	return docs, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func fileKind(contentType string) string {
	switch {
	case contentType == "application/pdf":
		return "pdf"
	case contentType == "text/csv":
		return "csv"
	case strings.Contains(contentType, "spreadsheet"), strings.Contains(contentType, "ms-excel"):
		return "excel"
	default:
		return "unknown"
	}
}
