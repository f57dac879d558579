package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/models"
	"github.com/markdave123-py/dataroom/internal/services"
)

// maxUploadBytes caps a whole multipart upload request.
const maxUploadBytes = 200 << 20

type DocumentHandler struct {
	documents *services.DocumentService
	embed     *services.EmbedService
	log       *logger.Logger
}

func NewDocumentHandler(documents *services.DocumentService, embed *services.EmbedService) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		embed:     embed,
		log:       logger.New("document_handler"),
	}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context())
	if err != nil {
		h.log.Error("list documents failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load documents")
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		h.log.Error("get document failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	sections, err := h.documents.Sections(r.Context(), id)
	if err != nil {
		h.log.Error("list sections failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load sections")
		return
	}
	if sections == nil {
		sections = []models.DocumentSection{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document": doc,
		"sections": sections,
	})
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if doc.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.documents.Create(r.Context(), &doc); err != nil {
		h.log.Error("create document failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create document")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// documentPatch carries partial updates; nil fields are left untouched.
type documentPatch struct {
	Title      *string `json:"title"`
	Path       *string `json:"path"`
	Content    *string `json:"content"`
	Summary    *string `json:"summary"`
	Position   *int    `json:"order"`
	ParentID   *string `json:"parent_id"`
	CategoryID *string `json:"category_id"`
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		h.log.Error("get document failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	var patch documentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Path != nil {
		doc.Path = *patch.Path
	}
	if patch.Content != nil {
		doc.Content = *patch.Content
	}
	if patch.Summary != nil {
		doc.Summary = *patch.Summary
	}
	if patch.Position != nil {
		doc.Position = *patch.Position
	}
	if patch.ParentID != nil {
		doc.ParentID = patch.ParentID
	}
	if patch.CategoryID != nil {
		doc.CategoryID = patch.CategoryID
	}

	if err := h.documents.Update(r.Context(), doc); err != nil {
		h.log.Error("update document failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to update document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.documents.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		h.log.Error("delete document failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *DocumentHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sections, err := h.documents.Sections(r.Context(), id)
	if err != nil {
		h.log.Error("list sections failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load sections")
		return
	}
	if sections == nil {
		sections = []models.DocumentSection{}
	}
	writeJSON(w, http.StatusOK, sections)
}

func (h *DocumentHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var section models.DocumentSection
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	section.DocumentID = id

	if err := h.documents.CreateSection(r.Context(), &section); err != nil {
		h.log.Error("create section failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to create section")
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

// Embed computes and stores the document's embedding.
func (h *DocumentHandler) Embed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.embed.EmbedDocument(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		case errors.Is(err, core.ErrProviderUnavailable):
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			h.log.Error("embed failed", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "failed to embed document")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "document embedded",
	})
}

// Upload accepts a multipart form with one or more "files" parts.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "no files in request")
		return
	}
	if len(parts) > services.MaxUploadFiles {
		writeError(w, http.StatusBadRequest, "too many files")
		return
	}

	files := make([]services.UploadedFile, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		files = append(files, services.UploadedFile{
			Name:        part.Filename,
			ContentType: part.Header.Get("Content-Type"),
			Size:        part.Size,
			Data:        data,
		})
	}

	docs, err := h.documents.Upload(r.Context(), files)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrStorageUnavailable):
			writeError(w, http.StatusInternalServerError, "file storage not configured")
		case errors.Is(err, core.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("upload failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to upload files")
		}
		return
	}
	writeJSON(w, http.StatusCreated, docs)
}
