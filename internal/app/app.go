package app

import (
	"context"
	"fmt"

	"github.com/markdave123-py/dataroom/internal/config"
	"github.com/markdave123-py/dataroom/internal/core"
	db "github.com/markdave123-py/dataroom/internal/core/database"
	"github.com/markdave123-py/dataroom/internal/core/llm"
	objectclient "github.com/markdave123-py/dataroom/internal/core/object-client"
	"github.com/markdave123-py/dataroom/internal/core/rag"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/services"
)

// App owns every long-lived dependency and the HTTP server built on top.
type App struct {
	Config *config.Config
	Store  core.Store
	Server *Server
	log    *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New("app")

	store, err := db.NewDatabaseClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// Object storage is optional. Without it, file upload endpoints report
	// storage unavailable while the rest of the API works.
	var objects core.ObjectClient
	objects, err = objectclient.NewS3Client(ctx, cfg)
	if err != nil {
		log.Warn("object storage disabled", "reason", err)
		objects = nil
	}

	embedder, llmProvider, err := llm.NewProviders(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ai providers: %w", err)
	}

	assembler := rag.NewAssembler(store, embedder)
	generator := rag.NewGenerator(llmProvider)

	chatSvc := services.NewChatService(store, assembler, generator)
	embedSvc := services.NewEmbedService(store, embedder)
	docSvc := services.NewDocumentService(store, objects, cfg.BucketName)
	catSvc := services.NewCategoryService(store)

	server := NewServer(cfg, chatSvc, docSvc, embedSvc, catSvc)

	return &App{
		Config: cfg,
		Store:  store,
		Server: server,
		log:    log,
	}, nil
}

// Close releases resources not owned by the HTTP server.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.log.Error("closing store", "error", err)
	}
}
