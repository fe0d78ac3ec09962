// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"presskit/internal/cache"
	"presskit/internal/models"
	"presskit/internal/slug"
	"presskit/internal/store"
)

// Sections groups the content-section handlers.
type Sections struct {
	sections *store.SectionStore
	cache    *cache.ContentCache
}

// NewSections creates a new Sections handler group. The cache may be nil.
func NewSections(sections *store.SectionStore, cc *cache.ContentCache) *Sections {
	return &Sections{sections: sections, cache: cc}
}

// sectionRequest is the request body for creating and updating sections.
// Defaults match the data model: new sections are active and shown in nav.
type sectionRequest struct {
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	SectionType models.SectionType `json:"section_type"`
	Description string             `json:"description"`
	IsActive    *bool              `json:"is_active"`
	ShowInNav   *bool              `json:"show_in_nav"`
	NavTitle    string             `json:"nav_title"`
	SortOrder   int                `json:"sort_order"`
}

func (req *sectionRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.add("name", "name is required")
	}
	if len(req.Name) > maxNameLen {
		errs.add("name", "name is too long (max 200 characters)")
	}
	if req.SectionType == "" {
		req.SectionType = models.SectionCustom
	}
	if !models.ValidSectionType(req.SectionType) {
		errs.add("section_type", "unknown section type")
	}
	return errs
}

// apply copies the request onto a section, deriving the slug from the
// name when none was supplied.
func (req *sectionRequest) apply(sec *models.Section) {
	sec.Name = strings.TrimSpace(req.Name)
	sec.Slug = strings.TrimSpace(req.Slug)
	if sec.Slug == "" {
		sec.Slug = slug.Generate(sec.Name)
	}
	sec.SectionType = req.SectionType
	sec.Description = req.Description
	sec.IsActive = req.IsActive == nil || *req.IsActive
	sec.ShowInNav = req.ShowInNav == nil || *req.ShowInNav
	sec.NavTitle = req.NavTitle
	sec.SortOrder = req.SortOrder
}

// List returns sections matching the query filters.
func (h *Sections) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	f := store.SectionFilter{
		SectionType: models.SectionType(r.URL.Query().Get("section_type")),
		IsActive:    queryBool(r, "is_active"),
		ShowInNav:   queryBool(r, "show_in_nav"),
		Search:      r.URL.Query().Get("search"),
		Limit:       limit,
		Offset:      offset,
	}

	items, count, err := h.sections.List(f)
	if err != nil {
		slog.Error("list sections failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.Section{}
	}
	respondList(w, r, count, items)
}

// Public returns active, navigation-visible sections in display order.
func (h *Sections) Public(w http.ResponseWriter, r *http.Request) {
	items, err := h.sections.ListPublic()
	if err != nil {
		slog.Error("list public sections failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.Section{}
	}
	respondList(w, r, len(items), items)
}

// Get returns one section by ID.
func (h *Sections) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "section")
		return
	}

	sec, err := h.sections.FindByID(id)
	if err != nil {
		slog.Error("find section failed", "error", err)
		respondServerError(w, r)
		return
	}
	if sec == nil {
		respondNotFound(w, r, "section")
		return
	}
	render.JSON(w, r, sec)
}

// Create inserts a new section.
func (h *Sections) Create(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	sec := &models.Section{}
	req.apply(sec)

	created, err := h.sections.Create(sec)
	if err == store.ErrDuplicateSlug {
		respondFieldErrors(w, r, fieldErrors{"slug": "slug already exists"})
		return
	}
	if err != nil {
		slog.Error("create section failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update modifies an existing section. Section changes affect navigation
// and page ownership, so the whole projection cache is cleared.
func (h *Sections) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "section")
		return
	}

	sec, err := h.sections.FindByID(id)
	if err != nil {
		slog.Error("find section failed", "error", err)
		respondServerError(w, r)
		return
	}
	if sec == nil {
		respondNotFound(w, r, "section")
		return
	}

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	req.apply(sec)
	err = h.sections.Update(sec)
	if err == store.ErrDuplicateSlug {
		respondFieldErrors(w, r, fieldErrors{"slug": "slug already exists"})
		return
	}
	if err != nil {
		slog.Error("update section failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}
	render.JSON(w, r, sec)
}

// Delete removes a section. Owned pages cascade in the database.
func (h *Sections) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "section")
		return
	}

	sec, err := h.sections.FindByID(id)
	if err != nil {
		slog.Error("find section failed", "error", err)
		respondServerError(w, r)
		return
	}
	if sec == nil {
		respondNotFound(w, r, "section")
		return
	}

	if err := h.sections.Delete(id); err != nil {
		slog.Error("delete section failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}
	w.WriteHeader(http.StatusNoContent)
}
