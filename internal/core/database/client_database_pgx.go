package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/dataroom/internal/config"
	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Documents

const documentColumns = `id, title, path, content, summary, position, parent_id, category_id,
		is_folder, is_file, file_url, file_type, file_name, file_size, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.ID, &d.Title, &d.Path, &d.Content, &d.Summary, &d.Position, &d.ParentID, &d.CategoryID,
		&d.IsFolder, &d.IsFile, &d.FileURL, &d.FileType, &d.FileName, &d.FileSize, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *DatabaseClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents ORDER BY position ASC, created_at ASC`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(c.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO documents
			(id, title, path, content, summary, position, parent_id, category_id,
			 is_folder, is_file, file_url, file_type, file_name, file_size, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
	`
	_, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.Title, doc.Path, doc.Content, doc.Summary, doc.Position, doc.ParentID, doc.CategoryID,
		doc.IsFolder, doc.IsFile, doc.FileURL, doc.FileType, doc.FileName, doc.FileSize)
	return err
}

func (c *DatabaseClient) UpdateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		UPDATE documents
		SET title = $2, path = $3, content = $4, summary = $5, position = $6,
			parent_id = $7, category_id = $8, is_folder = $9, is_file = $10,
			file_url = $11, file_type = $12, file_name = $13, file_size = $14,
			updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.Title, doc.Path, doc.Content, doc.Summary, doc.Position,
		doc.ParentID, doc.CategoryID, doc.IsFolder, doc.IsFile,
		doc.FileURL, doc.FileType, doc.FileName, doc.FileSize)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, id string) error {
	// Sections go with the document (ON DELETE CASCADE).
	res, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Sections

func (c *DatabaseClient) ListSections(ctx context.Context, documentID string) ([]models.DocumentSection, error) {
	const q = `
		SELECT id, document_id, title, content, position, (embedding IS NOT NULL)
		FROM document_sections
		WHERE document_id = $1
		ORDER BY position ASC
	`
	rows, err := c.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DocumentSection
	for rows.Next() {
		var s models.DocumentSection
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.Title, &s.Content, &s.Position, &s.HasEmbedding); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) CreateSection(ctx context.Context, section *models.DocumentSection) error {
	if section == nil {
		return errors.New("nil section")
	}
	const q = `
		INSERT INTO document_sections (id, document_id, title, content, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := c.db.ExecContext(ctx, q,
		section.ID, section.DocumentID, section.Title, section.Content, section.Position)
	return err
}

func (c *DatabaseClient) SetSectionEmbedding(ctx context.Context, sectionID string, embedding []float32) error {
	const q = `UPDATE document_sections SET embedding = $2 WHERE id = $1`
	res, err := c.db.ExecContext(ctx, q, sectionID, pgvector.NewVector(embedding))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (c *DatabaseClient) ListEmbeddedSections(ctx context.Context) ([]models.SectionContext, error) {
	const q = `
		SELECT s.document_id, d.title, s.id, s.title, s.content, s.embedding
		FROM document_sections s
		JOIN documents d ON d.id = s.document_id
		WHERE s.embedding IS NOT NULL
		ORDER BY d.position ASC, d.created_at ASC, s.position ASC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SectionContext
	for rows.Next() {
		var (
			sc  models.SectionContext
			emb pgvector.Vector
		)
		if err := rows.Scan(&sc.DocumentID, &sc.DocumentTitle, &sc.SectionID, &sc.SectionTitle, &sc.Content, &emb); err != nil {
			return nil, err
		}
		sc.Embedding = emb.Slice()
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Categories

func (c *DatabaseClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	const q = `
		SELECT id, name, color, position, created_at, updated_at
		FROM categories
		ORDER BY position ASC, created_at ASC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color, &cat.Position, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) CreateCategory(ctx context.Context, cat *models.Category) error {
	if cat == nil {
		return errors.New("nil category")
	}
	const q = `
		INSERT INTO categories (id, name, color, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`
	_, err := c.db.ExecContext(ctx, q, cat.ID, cat.Name, cat.Color, cat.Position)
	return err
}

func (c *DatabaseClient) UpdateCategory(ctx context.Context, cat *models.Category) error {
	if cat == nil {
		return errors.New("nil category")
	}
	const q = `
		UPDATE categories
		SET name = $2, color = $3, position = $4, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, cat.ID, cat.Name, cat.Color, cat.Position)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (c *DatabaseClient) DeleteCategory(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Chat log

func (c *DatabaseClient) ListChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	const q = `
		SELECT id, role, content, citations, created_at
		FROM chat_messages
		ORDER BY created_at ASC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var (
			m   models.ChatMessage
			raw []byte
		)
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &raw, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &m.Citations); err != nil {
				return nil, fmt.Errorf("decode citations for message %s: %w", m.ID, err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) AppendChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg == nil {
		return errors.New("nil chat message")
	}
	var citations any
	if msg.Citations != nil {
		raw, err := json.Marshal(msg.Citations)
		if err != nil {
			return fmt.Errorf("encode citations: %w", err)
		}
		citations = raw
	}
	const q = `
		INSERT INTO chat_messages (id, role, content, citations, created_at)
		VALUES ($1, $2, $3, $4, now())
	`
	_, err := c.db.ExecContext(ctx, q, msg.ID, msg.Role, msg.Content, citations)
	return err
}

func (c *DatabaseClient) ClearChatMessages(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM chat_messages`)
	return err
}
