package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/models"
)

// CategoryService is a thin CRUD layer over the category table.
type CategoryService struct {
	store core.Store
}

func NewCategoryService(store core.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, cat *models.Category) error {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	return s.store.CreateCategory(ctx, cat)
}

func (s *CategoryService) Update(ctx context.Context, cat *models.Category) error {
	return s.store.UpdateCategory(ctx, cat)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}
