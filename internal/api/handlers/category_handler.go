package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/models"
	"github.com/markdave123-py/dataroom/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
	log        *logger.Logger
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: logger.New("category_handler")}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cat.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.categories.Create(r.Context(), &cat); err != nil {
		h.log.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cat.ID = chi.URLParam(r, "id")

	if err := h.categories.Update(r.Context(), &cat); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		h.log.Error("update category failed", "error", err, "id", cat.ID)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.categories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		h.log.Error("delete category failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
