package models

import (
	"time"
)

// Category groups documents in the dataroom tree.
type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	Position  int       `db:"position" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Document is one node of the dataroom tree: a folder, an authored text
// document, or an uploaded file. Authored documents carry their text in
// Content; uploaded files carry object-storage metadata instead.
type Document struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Path       string    `db:"path" json:"path"`
	Content    string    `db:"content" json:"content"`
	Summary    string    `db:"summary" json:"summary"`
	Position   int       `db:"position" json:"order"`
	ParentID   *string   `db:"parent_id" json:"parent_id"`
	CategoryID *string   `db:"category_id" json:"category_id"`
	IsFolder   bool      `db:"is_folder" json:"is_folder"`
	IsFile     bool      `db:"is_file" json:"is_file"`
	FileURL    *string   `db:"file_url" json:"file_url"`
	FileType   *string   `db:"file_type" json:"file_type"`
	FileName   *string   `db:"file_name" json:"file_name"`
	FileSize   *int64    `db:"file_size" json:"file_size"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentSection is one embedded chunk of a document. The current embed
// pipeline stores the whole document as a single section; the embedding
// column stays NULL until the embed operation runs for the document.
type DocumentSection struct {
	ID           string `db:"id" json:"id"`
	DocumentID   string `db:"document_id" json:"document_id"`
	Title        string `db:"title" json:"title"`
	Content      string `db:"content" json:"content"`
	Position     int    `db:"position" json:"order"`
	HasEmbedding bool   `db:"-" json:"embedded"`
}

// SectionContext is the retrieval projection: a section (or, in fallback
// mode, a whole document) joined with its owning document's title. SectionID
// and SectionTitle are empty for whole-document fallback contexts.
type SectionContext struct {
	DocumentID    string
	DocumentTitle string
	SectionID     string
	SectionTitle  string
	Content       string
	Embedding     []float32
}

// Citation is a structured back-reference from an answer's bracketed index
// to the source document/section. Field names follow the wire format the
// model is instructed to emit.
type Citation struct {
	Index        int    `json:"index"`
	DocID        string `json:"docId"`
	SectionID    string `json:"sectionId,omitempty"`
	DocTitle     string `json:"docTitle"`
	SectionTitle string `json:"sectionTitle,omitempty"`
}

// ChatMessage is one entry of the append-only chat log. Citations is nil for
// user messages and for assistant messages whose citation block failed to
// parse.
type ChatMessage struct {
	ID        string     `db:"id" json:"id"`
	Role      string     `db:"role" json:"role"`
	Content   string     `db:"content" json:"content"`
	Citations []Citation `db:"citations" json:"citations"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
