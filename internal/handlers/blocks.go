// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"presskit/internal/cache"
	"presskit/internal/models"
	"presskit/internal/slug"
	"presskit/internal/store"
)

// Blocks groups the reusable content block handlers.
type Blocks struct {
	blocks *store.BlockStore
	cache  *cache.ContentCache
}

// NewBlocks creates a new Blocks handler group. The cache may be nil.
func NewBlocks(blocks *store.BlockStore, cc *cache.ContentCache) *Blocks {
	return &Blocks{blocks: blocks, cache: cc}
}

// blockRequest is the request body for creating and updating blocks.
type blockRequest struct {
	Name       string           `json:"name"`
	Identifier string           `json:"identifier"`
	BlockType  models.BlockType `json:"block_type"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	ImageURL   string           `json:"image_url"`
	LinkURL    string           `json:"link_url"`
	ButtonText string           `json:"button_text"`
	CSSClasses string           `json:"css_classes"`
	IsActive   *bool            `json:"is_active"`
}

func (req *blockRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.add("name", "name is required")
	}
	if len(req.Name) > maxNameLen {
		errs.add("name", "name is too long (max 200 characters)")
	}
	if req.BlockType == "" {
		req.BlockType = models.BlockText
	}
	if !models.ValidBlockType(req.BlockType) {
		errs.add("block_type", "unknown block type")
	}
	return errs
}

// apply copies the request onto a block, deriving the identifier from the
// name when none was supplied.
func (req *blockRequest) apply(b *models.ContentBlock) {
	b.Name = strings.TrimSpace(req.Name)
	b.Identifier = strings.TrimSpace(req.Identifier)
	if b.Identifier == "" {
		b.Identifier = slug.Generate(b.Name)
	}
	b.BlockType = req.BlockType
	b.Title = req.Title
	b.Body = req.Body
	b.ImageURL = req.ImageURL
	b.LinkURL = req.LinkURL
	b.ButtonText = req.ButtonText
	b.CSSClasses = req.CSSClasses
	b.IsActive = req.IsActive == nil || *req.IsActive
}

// List returns blocks matching the query filters.
func (h *Blocks) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	f := store.BlockFilter{
		BlockType:  models.BlockType(r.URL.Query().Get("block_type")),
		IsActive:   queryBool(r, "is_active"),
		Identifier: r.URL.Query().Get("identifier"),
		Search:     r.URL.Query().Get("search"),
		Limit:      limit,
		Offset:     offset,
	}

	items, count, err := h.blocks.List(f)
	if err != nil {
		slog.Error("list blocks failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.ContentBlock{}
	}
	respondList(w, r, count, items)
}

// Public returns active blocks, filterable by type and identifier.
func (h *Blocks) Public(w http.ResponseWriter, r *http.Request) {
	items, err := h.blocks.ListActive(
		models.BlockType(r.URL.Query().Get("type")),
		r.URL.Query().Get("identifier"),
	)
	if err != nil {
		slog.Error("list active blocks failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.ContentBlock{}
	}
	respondList(w, r, len(items), items)
}

// PublicByIdentifier returns one active block by its identifier, serving
// from the projection cache when possible. Inactive blocks answer 404.
func (h *Blocks) PublicByIdentifier(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	if identifier == "" {
		respondNotFound(w, r, "block")
		return
	}

	if h.cache != nil {
		if body, ok := h.cache.Get(r.Context(), cache.BlockKey(identifier)); ok {
			writeCachedJSON(w, body)
			return
		}
	}

	b, err := h.blocks.FindActiveByIdentifier(identifier)
	if err != nil {
		slog.Error("find block failed", "error", err)
		respondServerError(w, r)
		return
	}
	if b == nil {
		respondNotFound(w, r, "block")
		return
	}

	if h.cache != nil {
		if body, err := json.Marshal(b); err == nil {
			h.cache.Set(r.Context(), cache.BlockKey(identifier), body)
		}
	}
	render.JSON(w, r, b)
}

// Get returns one block by ID.
func (h *Blocks) Get(w http.ResponseWriter, r *http.Request) {
	b := h.findBlock(w, r)
	if b == nil {
		return
	}
	render.JSON(w, r, b)
}

// Create inserts a new block.
func (h *Blocks) Create(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	b := &models.ContentBlock{}
	req.apply(b)

	created, err := h.blocks.Create(b)
	if err == store.ErrDuplicateSlug {
		respondFieldErrors(w, r, fieldErrors{"identifier": "identifier already exists"})
		return
	}
	if err != nil {
		slog.Error("create block failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update modifies an existing block.
func (h *Blocks) Update(w http.ResponseWriter, r *http.Request) {
	b := h.findBlock(w, r)
	if b == nil {
		return
	}

	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	oldIdentifier := b.Identifier
	req.apply(b)
	err := h.blocks.Update(b)
	if err == store.ErrDuplicateSlug {
		respondFieldErrors(w, r, fieldErrors{"identifier": "identifier already exists"})
		return
	}
	if err != nil {
		slog.Error("update block failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.BlockKey(oldIdentifier))
		if b.Identifier != oldIdentifier {
			h.cache.Invalidate(r.Context(), cache.BlockKey(b.Identifier))
		}
	}
	render.JSON(w, r, b)
}

// Delete removes a block. Page associations cascade; pages do not.
func (h *Blocks) Delete(w http.ResponseWriter, r *http.Request) {
	b := h.findBlock(w, r)
	if b == nil {
		return
	}

	if err := h.blocks.Delete(b.ID); err != nil {
		slog.Error("delete block failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.BlockKey(b.Identifier))
	}
	w.WriteHeader(http.StatusNoContent)
}

// findBlock resolves the {id} URL parameter to a block, answering 404
// (and returning nil) when it does not resolve.
func (h *Blocks) findBlock(w http.ResponseWriter, r *http.Request) *models.ContentBlock {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "block")
		return nil
	}

	b, err := h.blocks.FindByID(id)
	if err != nil {
		slog.Error("find block failed", "error", err)
		respondServerError(w, r)
		return nil
	}
	if b == nil {
		respondNotFound(w, r, "block")
		return nil
	}
	return b
}
