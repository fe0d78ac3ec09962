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

// Posts groups the blog post handlers.
type Posts struct {
	posts *store.PostStore
	cache *cache.ContentCache
}

// NewPosts creates a new Posts handler group. The cache may be nil.
func NewPosts(posts *store.PostStore, cc *cache.ContentCache) *Posts {
	return &Posts{posts: posts, cache: cc}
}

// postRequest is the request body for creating and updating blog posts.
type postRequest struct {
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Status          models.Status  `json:"status"`
	Body            string         `json:"body"`
	Excerpt         string         `json:"excerpt"`
	FeaturedImageID *int64         `json:"featured_image_id"`
	Tags            string         `json:"tags"`
	Category        string         `json:"category"`
	ScheduledFor    *time.Time     `json:"scheduled_for"`
	AllowComments   *bool          `json:"allow_comments"`
	IsFeatured      bool           `json:"is_featured"`
	ReadTimeMinutes int            `json:"read_time_minutes"`
	SEO             models.SEOMeta `json:"seo"`
}

func (req *postRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.validateTitle(req.Title, req.Slug)
	errs.validateExcerpt(req.Excerpt)
	errs.validateSEO(req.SEO)
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.ValidPostStatus(req.Status) {
		errs.add("status", "unknown post status")
	}
	if len(req.Category) > maxCategoryLen {
		errs.add("category", "category is too long (max 100 characters)")
	}
	if req.ReadTimeMinutes < 0 {
		errs.add("read_time_minutes", "read time must be positive")
	}
	return errs
}

// apply copies the writable request fields onto a post. Tags are stored
// normalized: split on commas, trimmed, empties dropped, order kept.
func (req *postRequest) apply(p *models.BlogPost) {
	p.Title = strings.TrimSpace(req.Title)
	p.Slug = strings.TrimSpace(req.Slug)
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	p.Status = req.Status
	p.Body = req.Body
	p.Excerpt = req.Excerpt
	p.FeaturedImageID = req.FeaturedImageID
	p.Tags = strings.Join(models.SplitTags(req.Tags), ", ")
	p.Category = strings.TrimSpace(req.Category)
	p.ScheduledFor = req.ScheduledFor
	p.AllowComments = req.AllowComments == nil || *req.AllowComments
	p.IsFeatured = req.IsFeatured
	p.ReadTimeMinutes = req.ReadTimeMinutes
	if p.ReadTimeMinutes <= 0 {
		p.ReadTimeMinutes = models.DefaultReadTimeMinutes
	}
	p.SEO = req.SEO
	p.SEO.ApplyDefaults()
}

// publicPost is the blog post projection served to anonymous visitors.
type publicPost struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Body            string         `json:"body"`
	Excerpt         string         `json:"excerpt"`
	Tags            []string       `json:"tags"`
	Category        string         `json:"category"`
	AuthorID        int64          `json:"author_id"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	AllowComments   bool           `json:"allow_comments"`
	IsFeatured      bool           `json:"is_featured"`
	ReadTimeMinutes int            `json:"read_time_minutes"`
	SEO             models.SEOMeta `json:"seo"`
}

func projectPost(p *models.BlogPost) publicPost {
	tags := p.TagList()
	if tags == nil {
		tags = []string{}
	}
	return publicPost{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Body:            p.Body,
		Excerpt:         p.Excerpt,
		Tags:            tags,
		Category:        p.Category,
		AuthorID:        p.AuthorID,
		PublishedAt:     p.PublishedAt,
		AllowComments:   p.AllowComments,
		IsFeatured:      p.IsFeatured,
		ReadTimeMinutes: p.ReadTimeMinutes,
		SEO:             p.SEO,
	}
}

// List returns blog posts matching the query filters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	f := store.PostFilter{
		Status:     models.Status(r.URL.Query().Get("status")),
		Category:   r.URL.Query().Get("category"),
		AuthorID:   queryInt64(r, "author"),
		IsFeatured: queryBool(r, "is_featured"),
		Search:     r.URL.Query().Get("search"),
		Limit:      limit,
		Offset:     offset,
	}

	items, count, err := h.posts.List(f)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondServerError(w, r)
		return
	}
	if items == nil {
		items = []models.BlogPost{}
	}
	respondList(w, r, count, items)
}

// Get returns one blog post by ID.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	p := h.findPost(w, r)
	if p == nil {
		return
	}
	render.JSON(w, r, p)
}

// Create inserts a new blog post, authored by the acting user.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	p := &models.BlogPost{}
	req.apply(p)
	p.AuthorID = middleware.IdentityFromCtx(r.Context()).UserID

	created, err := h.posts.Create(p)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("create post failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update modifies an existing blog post. The author is never reassigned
// and an existing publish timestamp is carried through unchanged.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	p := h.findPost(w, r)
	if p == nil {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondFieldErrors(w, r, errs)
		return
	}

	oldSlug := p.Slug
	req.apply(p)
	err := h.posts.Update(p)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("update post failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PostKey(oldSlug))
		if p.Slug != oldSlug {
			h.cache.Invalidate(r.Context(), cache.PostKey(p.Slug))
		}
	}
	render.JSON(w, r, p)
}

// Delete removes a blog post.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	p := h.findPost(w, r)
	if p == nil {
		return
	}

	if err := h.posts.Delete(p.ID); err != nil {
		slog.Error("delete post failed", "error", err)
		respondServerError(w, r)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), cache.PostKey(p.Slug))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate clones a post as a fresh draft owned by the acting user.
func (h *Posts) Duplicate(w http.ResponseWriter, r *http.Request) {
	p := h.findPost(w, r)
	if p == nil {
		return
	}

	dup := *p
	dup.ID = 0
	dup.Title = p.Title + " (Copy)"
	dup.Slug = slug.Generate(dup.Title)
	dup.Status = models.StatusDraft
	dup.PublishedAt = nil
	dup.ScheduledFor = nil
	dup.AuthorID = middleware.IdentityFromCtx(r.Context()).UserID

	created, err := h.posts.Create(&dup)
	if respondConstraintError(w, r, err) {
		return
	}
	if err != nil {
		slog.Error("duplicate post failed", "error", err)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// ListPublic returns live posts. Filters: category (exact), tags (comma
// list, every tag must match), featured=true.
func (h *Posts) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	featured := queryBool(r, "featured")
	f := store.LivePostFilter{
		Category:     r.URL.Query().Get("category"),
		Tags:         models.SplitTags(r.URL.Query().Get("tags")),
		FeaturedOnly: featured != nil && *featured,
		Limit:        limit,
		Offset:       offset,
	}

	items, count, err := h.posts.ListLive(f)
	if err != nil {
		slog.Error("list live posts failed", "error", err)
		respondServerError(w, r)
		return
	}

	results := make([]publicPost, 0, len(items))
	for i := range items {
		results = append(results, projectPost(&items[i]))
	}
	respondList(w, r, count, results)
}

// PublicBySlug returns one live post by slug, serving from the projection
// cache when possible. Draft, scheduled, archived, and future-dated posts
// answer 404.
func (h *Posts) PublicBySlug(w http.ResponseWriter, r *http.Request) {
	s := urlSlug(r)
	if s == "" {
		respondNotFound(w, r, "post")
		return
	}

	if h.cache != nil {
		if body, ok := h.cache.Get(r.Context(), cache.PostKey(s)); ok {
			writeCachedJSON(w, body)
			return
		}
	}

	p, err := h.posts.FindLiveBySlug(s)
	if err != nil {
		slog.Error("find live post failed", "error", err)
		respondServerError(w, r)
		return
	}
	if p == nil {
		respondNotFound(w, r, "post")
		return
	}

	proj := projectPost(p)
	if h.cache != nil {
		if body, err := json.Marshal(proj); err == nil {
			h.cache.Set(r.Context(), cache.PostKey(s), body)
		}
	}
	render.JSON(w, r, proj)
}

// Categories returns the distinct categories of published posts.
func (h *Posts) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.posts.Categories()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondServerError(w, r)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	render.JSON(w, r, categories)
}

// Tags returns the deduplicated, sorted tags of published posts.
func (h *Posts) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.posts.Tags()
	if err != nil {
		slog.Error("list tags failed", "error", err)
		respondServerError(w, r)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	render.JSON(w, r, tags)
}

// findPost resolves the {id} URL parameter to a post, answering 404 (and
// returning nil) when it does not resolve.
func (h *Posts) findPost(w http.ResponseWriter, r *http.Request) *models.BlogPost {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "post")
		return nil
	}

	p, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err)
		respondServerError(w, r)
		return nil
	}
	if p == nil {
		respondNotFound(w, r, "post")
		return nil
	}
	return p
}
