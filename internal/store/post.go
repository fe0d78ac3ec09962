// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"presskit/internal/models"
)

// PostStore handles all blog-post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, status, body, excerpt,
	featured_image_id, tags, category, author_id, published_at, scheduled_for,
	allow_comments, is_featured, read_time_minutes,
	meta_title, meta_description, canonical_url, og_title, og_description,
	og_image, robots, structured_data, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Status, &p.Body, &p.Excerpt,
		&p.FeaturedImageID, &p.Tags, &p.Category, &p.AuthorID, &p.PublishedAt,
		&p.ScheduledFor, &p.AllowComments, &p.IsFeatured, &p.ReadTimeMinutes,
		&p.SEO.MetaTitle, &p.SEO.MetaDescription, &p.SEO.CanonicalURL,
		&p.SEO.OGTitle, &p.SEO.OGDescription, &p.SEO.OGImage,
		&p.SEO.Robots, &p.SEO.StructuredData, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PostFilter narrows administrative blog post listings.
type PostFilter struct {
	Status     models.Status
	Category   string
	AuthorID   int64
	IsFeatured *bool
	Search     string
	Limit      int
	Offset     int
}

// List returns blog posts matching the filter ordered by (published_at
// desc, created_at desc), together with the total count of matching rows.
func (s *PostStore) List(f PostFilter) ([]models.BlogPost, int, error) {
	var where []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		where = append(where, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if f.IsFeatured != nil {
		args = append(args, *f.IsFeatured)
		where = append(where, fmt.Sprintf("is_featured = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR body ILIKE $%d OR tags ILIKE $%d OR slug ILIKE $%d)",
			len(args), len(args), len(args), len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM blog_posts"+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := "SELECT " + postColumns + " FROM blog_posts" + clause +
		" ORDER BY published_at DESC NULLS LAST, created_at DESC"
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, count, rows.Err()
}

// LivePostFilter narrows the public blog listing. Every tag in Tags must
// substring-match the stored tag string for a post to qualify.
type LivePostFilter struct {
	Category     string
	Tags         []string
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// ListLive returns live posts — published with published_at in the past —
// ordered by (published_at desc, created_at desc).
func (s *PostStore) ListLive(f LivePostFilter) ([]models.BlogPost, int, error) {
	where := []string{"status = 'published'", "published_at <= NOW()"}
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	for _, tag := range f.Tags {
		args = append(args, "%"+tag+"%")
		where = append(where, fmt.Sprintf("tags ILIKE $%d", len(args)))
	}
	if f.FeaturedOnly {
		where = append(where, "is_featured = TRUE")
	}

	clause := " WHERE " + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM blog_posts"+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count live posts: %w", err)
	}

	query := "SELECT " + postColumns + " FROM blog_posts" + clause +
		" ORDER BY published_at DESC, created_at DESC"
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list live posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, count, rows.Err()
}

// FindByID retrieves a blog post by ID. Returns nil if not found.
func (s *PostStore) FindByID(id int64) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(
		"SELECT "+postColumns+" FROM blog_posts WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindLiveBySlug retrieves a live post by its slug: published and past its
// effective publish time. A scheduled or future-dated post is not live.
func (s *PostStore) FindLiveBySlug(slug string) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+` FROM blog_posts
		WHERE slug = $1 AND status = 'published' AND published_at <= NOW()
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find live post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new blog post and returns it with generated fields.
// Creating directly in published status stamps published_at in the same
// write. A slug collision returns ErrDuplicateSlug.
func (s *PostStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	if p.Status == models.StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	if p.ReadTimeMinutes <= 0 {
		p.ReadTimeMinutes = models.DefaultReadTimeMinutes
	}

	created, err := scanPost(s.db.QueryRow(`
		INSERT INTO blog_posts (title, slug, status, body, excerpt,
			featured_image_id, tags, category, author_id, published_at, scheduled_for,
			allow_comments, is_featured, read_time_minutes,
			meta_title, meta_description, canonical_url, og_title, og_description,
			og_image, robots, structured_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Status, p.Body, p.Excerpt,
		p.FeaturedImageID, p.Tags, p.Category, p.AuthorID, p.PublishedAt, p.ScheduledFor,
		p.AllowComments, p.IsFeatured, p.ReadTimeMinutes,
		p.SEO.MetaTitle, p.SEO.MetaDescription, p.SEO.CanonicalURL,
		p.SEO.OGTitle, p.SEO.OGDescription, p.SEO.OGImage,
		p.SEO.Robots, p.SEO.StructuredData,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if refErr := invalidReference(err, "blog_posts"); refErr != nil {
		return nil, refErr
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// Update modifies an existing blog post. The first transition into
// published status stamps published_at; later saves never move or clear
// it, whatever the status becomes. The author is never reassigned.
func (s *PostStore) Update(p *models.BlogPost) error {
	if p.Status == models.StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE blog_posts SET
			title = $1, slug = $2, status = $3, body = $4, excerpt = $5,
			featured_image_id = $6, tags = $7, category = $8,
			published_at = $9, scheduled_for = $10,
			allow_comments = $11, is_featured = $12, read_time_minutes = $13,
			meta_title = $14, meta_description = $15, canonical_url = $16,
			og_title = $17, og_description = $18, og_image = $19,
			robots = $20, structured_data = $21, updated_at = NOW()
		WHERE id = $22
	`, p.Title, p.Slug, p.Status, p.Body, p.Excerpt,
		p.FeaturedImageID, p.Tags, p.Category,
		p.PublishedAt, p.ScheduledFor,
		p.AllowComments, p.IsFeatured, p.ReadTimeMinutes,
		p.SEO.MetaTitle, p.SEO.MetaDescription, p.SEO.CanonicalURL,
		p.SEO.OGTitle, p.SEO.OGDescription, p.SEO.OGImage,
		p.SEO.Robots, p.SEO.StructuredData, p.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if refErr := invalidReference(err, "blog_posts"); refErr != nil {
		return refErr
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a blog post by ID.
func (s *PostStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Categories returns the distinct non-empty categories across published
// posts, sorted alphabetically.
func (s *PostStore) Categories() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT category FROM blog_posts
		WHERE status = 'published' AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Tags returns every distinct tag across published posts, deduplicated
// and sorted lexically. Storage keeps the raw comma-separated strings;
// the split-and-dedupe happens here.
func (s *PostStore) Tags() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT tags FROM blog_posts WHERE status = 'published' AND tags <> ''
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		for _, t := range models.SplitTags(raw) {
			seen[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}
