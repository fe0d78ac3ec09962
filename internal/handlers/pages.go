// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"presskit/internal/cache"
	"presskit/internal/middleware"
	"presskit/internal/models"
	"presskit/internal/slug"
	"presskit/internal/store"
)

// Pages groups the page handlers.
type Pages struct {
	pages    *store.PageStore
	sections *store.SectionStore
	blocks   *store.BlockStore
	cache    *cache.ContentCache
}

// NewPages creates a new Pages handler group. The cache may be nil.
func NewPages(pages *store.PageStore, sections *store.SectionStore, blocks *store.BlockStore, cc *cache.ContentCache) *Pages {
	return &Pages{pages: pages, sections: sections, blocks: blocks, cache: cc}
}

// pageRequest is the request body for creating and updating pages.
type pageRequest struct {
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Status          models.Status  `json:"status"`
	Body            string         `json:"body"`
	Excerpt         string         `json:"excerpt"`
	FeaturedImageID *int64         `json:"featured_image_id"`
	SectionID       int64          `json:"section_id"`
	TemplateName    string         `json:"template_name"`
	RequiresAuth    bool           `json:"requires_auth"`
	CustomCSS       string         `json:"custom_css"`
	CustomJS        string         `json:"custom_js"`
	SEO             models.SEOMeta `json:"seo"`
}

func (req *pageRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.validateTitle(req.Title, req.Slug)
	errs.validateExcerpt(req.Excerpt)
	errs.validateSEO(req.SEO)
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.ValidPageStatus(req.Status) {
		errs.add("status", "unknown page status")
	}
	if req.SectionID <= 0 {
		errs.add("section_id", "section is required")
	}
	return errs
}

// apply copies the writable request fields onto a page. The author and
// publish timestamp are deliberately left alone; the store stamps
// published_at on the first transition into published.
func (req *pageRequest) apply(p *models.Page) {
	p.Title = strings.TrimSpace(req.Title)
	p.Slug = strings.TrimSpace(req.Slug)
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	p.Status = req.Status
	p.Body = req.Body
	p.Excerpt = req.Excerpt
	p.FeaturedImageID = req.FeaturedImageID
	p.SectionID = req.SectionID
	p.TemplateName = req.TemplateName
	if p.TemplateName == "" {
		p.TemplateName = "default"
	}
	p.RequiresAuth = req.RequiresAuth
	p.CustomCSS = req.CustomCSS
	p.CustomJS = req.CustomJS
	p.SEO = req.SEO
	p.SEO.ApplyDefaults()
}

// publicPage is the page projection served to anonymous visitors. It
// carries the rendered content and SEO metadata but never the styling
// hooks or authoring internals.
type publicPage struct {
	ID           int64                  `json:"id"`
	Title        string                 `json:"title"`
	Slug         string                 `json:"slug"`
	Body         string                 `json:"body"`
	Excerpt      string                 `json:"excerpt"`
	TemplateName string                 `json:"template_name"`
	AuthorID     int64                  `json:"author_id"`
	PublishedAt  *time.Time             `json:"published_at,omitempty"`
	SEO          models.SEOMeta         `json:"seo"`
	Blocks       []models.AttachedBlock `json:"blocks,omitempty"`
}

func projectPage(p *models.Page, blocks []models.AttachedBlock) publicPage {
	return publicPage{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Body:         p.Body,
		Excerpt:      p.Excerpt,
		TemplateName: p.TemplateName,
		AuthorID:     p.AuthorID,
		PublishedAt:  p.PublishedAt,
		SEO:          p.SEO,
		Blocks:       blocks,
	}
}

// List returns pages matching the query filters.
func (h *Pages) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	f := store.PageFilter{
		Status:       models.Status(r.URL.Query().Get("status")),
		SectionID:    queryInt64(r, "section"),
		AuthorID:     queryInt64(r, "author"),
		RequiresAuth: queryBool(r, "requires_auth"),
		Search:       r.URL.Query().Get("search"),
		Limit:        limit,
		Offset:       offset,
	}

	items, count, err := h.pages.List(f)
	if err != nil {
		slog.Error("list pages failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.Page{}
	}
	respondList(w, r, count, items)
}

// Get returns one page by ID.
func (h *Pages) Get(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}
	render.JSON(w, r, p)
}

// Create inserts a new page, authored by the acting user.
func (h *Pages) Create(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	sec, err := h.sections.FindByID(req.SectionID)
	if err != nil {
		slog.Error("find section failed", "error", err)
		respondServerError(w, r)
		return
	}
	if sec == nil {
		respondFieldErrors(w, r, fieldErrors{"section_id": "section does not exist"})
		return
	}

	p := &models.Page{}
	req.apply(p)
	p.AuthorID = middleware.IdentityFromCtx(r.Context()).UserID

	created, err := h.pages.Create(p)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("create page failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update modifies an existing page. The author is never reassigned and an
// existing publish timestamp is carried through unchanged.
func (h *Pages) Update(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	sec, err := h.sections.FindByID(req.SectionID)
	if err != nil {
		slog.Error("find section failed", "error", err)
		respondServerError(w, r)
		return
	}
	if sec == nil {
		respondFieldErrors(w, r, fieldErrors{"section_id": "section does not exist"})
		return
	}

	oldSlug := p.Slug
	req.apply(p)
	err = h.pages.Update(p)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("update page failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PageKey(oldSlug))
		if p.Slug != oldSlug {
			h.cache.Invalidate(r.Context(), cache.PageKey(p.Slug))
		}
	}
	render.JSON(w, r, p)
}

// Delete removes a page. Block associations cascade in the database.
func (h *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}

	if err := h.pages.Delete(p.ID); err != nil {
		slog.Error("delete page failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate clones a page as a fresh draft owned by the acting user. The
// copy gets a derived slug and no publish timestamp, whatever the
// original's state.
func (h *Pages) Duplicate(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}

	dup := *p
	dup.ID = 0
	dup.Title = p.Title + " (Copy)"
	dup.Slug = slug.Generate(dup.Title)
	dup.Status = models.StatusDraft
	dup.PublishedAt = nil
	dup.AuthorID = middleware.IdentityFromCtx(r.Context()).UserID

	created, err := h.pages.Create(&dup)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("duplicate page failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// ListBlocks returns the content blocks attached to a page in order.
func (h *Pages) ListBlocks(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}

	items, err := h.blocks.ListForPage(p.ID)
	if err != nil {
		slog.Error("list page blocks failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.AttachedBlock{}
	}
	respondList(w, r, len(items), items)
}

type attachRequest struct {
	BlockID   int64  `json:"block_id"`
	SortOrder int    `json:"sort_order"`
	Caption   string `json:"caption"`
}

// AttachBlock associates a block with a page. Attaching an already
// attached block updates its order and caption.
func (h *Pages) AttachBlock(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}

	var req attachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	blk, err := h.blocks.FindByID(req.BlockID)
	if err != nil {
		slog.Error("find block failed", "error", err)
		respondServerError(w, r)
		return
	}
	if blk == nil {
		respondFieldErrors(w, r, fieldErrors{"block_id": "block does not exist"})
		return
	}

	if err := h.blocks.AttachToPage(p.ID, blk.ID, req.SortOrder, req.Caption); err != nil {
		slog.Error("attach block failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetachBlock removes a block association from a page.
func (h *Pages) DetachBlock(w http.ResponseWriter, r *http.Request) {
	p := h.findPage(w, r)
	if p == nil {
		return
	}
	blockID, ok := urlID(r, "blockID")
	if !ok {
		respondNotFound(w, r, "block")
		return
	}

	if err := h.blocks.DetachFromPage(p.ID, blockID); err != nil {
		slog.Error("detach block failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPublic returns live pages, optionally narrowed to a section slug.
func (h *Pages) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, count, err := h.pages.ListLive(r.URL.Query().Get("section"), limit, offset)
	if err != nil {
		slog.Error("list live pages failed", "error", err)
		respondServerError(w, r)
		return
	}

	results := make([]publicPage, 0, len(items))
	for i := range items {
		results = append(results, projectPage(&items[i], nil))
	}
	respondList(w, r, count, results)
}

// PublicBySlug returns one live page by slug, serving from the projection
// cache when possible. Pages that are draft or archived answer 404.
func (h *Pages) PublicBySlug(w http.ResponseWriter, r *http.Request) {
	s := urlSlug(r)
	if s == "" {
		respondNotFound(w, r, "page")
		return
	}

	if h.cache != nil {
		if body, ok := h.cache.Get(r.Context(), cache.PageKey(s)); ok {
			writeCachedJSON(w, body)
			return
		}
	}

	p, err := h.pages.FindLiveBySlug(s)
	if err != nil {
		slog.Error("find live page failed", "error", err)
		respondServerError(w, r)
		return
	}
	if p == nil {
		respondNotFound(w, r, "page")
		return
	}

	blocks, err := h.blocks.ListForPage(p.ID)
	if err != nil {
		slog.Error("list page blocks failed", "error", err)
		respondServerError(w, r)
		return
	}

	proj := projectPage(p, blocks)
	if h.cache != nil {
		if body, err := json.Marshal(proj); err == nil {
			h.cache.Set(r.Context(), cache.PageKey(s), body)
		}
	}
	render.JSON(w, r, proj)
}

// findPage resolves the {id} URL parameter to a page, answering 404 (and
// returning nil) when it does not resolve.
func (h *Pages) findPage(w http.ResponseWriter, r *http.Request) *models.Page {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "page")
		return nil
	}

	p, err := h.pages.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "error", err)
		respondServerError(w, r)
		return nil
	}
	if p == nil {
		respondNotFound(w, r, "page")
		return nil
	}
	return p
}
