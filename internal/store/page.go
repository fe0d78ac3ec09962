// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"presskit/internal/models"
)

// PageStore handles all page-related database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, title, slug, status, body, excerpt,
	featured_image_id, section_id, template_name, author_id, published_at,
	requires_auth, custom_css, custom_js,
	meta_title, meta_description, canonical_url, og_title, og_description,
	og_image, robots, structured_data, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (*models.Page, error) {
	p := &models.Page{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Status, &p.Body, &p.Excerpt,
		&p.FeaturedImageID, &p.SectionID, &p.TemplateName, &p.AuthorID, &p.PublishedAt,
		&p.RequiresAuth, &p.CustomCSS, &p.CustomJS,
		&p.SEO.MetaTitle, &p.SEO.MetaDescription, &p.SEO.CanonicalURL,
		&p.SEO.OGTitle, &p.SEO.OGDescription, &p.SEO.OGImage,
		&p.SEO.Robots, &p.SEO.StructuredData, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PageFilter narrows administrative page listings.
type PageFilter struct {
	Status       models.Status
	SectionID    int64
	AuthorID     int64
	RequiresAuth *bool
	Search       string
	Limit        int
	Offset       int
}

// List returns pages matching the filter ordered by creation date
// descending, together with the total count of matching rows.
func (s *PageStore) List(f PageFilter) ([]models.Page, int, error) {
	var where []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SectionID != 0 {
		args = append(args, f.SectionID)
		where = append(where, fmt.Sprintf("section_id = $%d", len(args)))
	}
	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		where = append(where, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if f.RequiresAuth != nil {
		args = append(args, *f.RequiresAuth)
		where = append(where, fmt.Sprintf("requires_auth = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR body ILIKE $%d OR meta_title ILIKE $%d OR slug ILIKE $%d)",
			len(args), len(args), len(args), len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pages"+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count pages: %w", err)
	}

	query := "SELECT " + pageColumns + " FROM pages" + clause + " ORDER BY created_at DESC"
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, count, rows.Err()
}

// ListLive returns published pages for the public projection, newest first.
// When sectionSlug is non-empty the listing narrows to that section.
func (s *PageStore) ListLive(sectionSlug string, limit, offset int) ([]models.Page, int, error) {
	clause := " WHERE p.status = 'published'"
	var args []any
	if sectionSlug != "" {
		args = append(args, sectionSlug)
		clause += fmt.Sprintf(" AND s.slug = $%d", len(args))
	}
	from := " FROM pages p JOIN sections s ON s.id = p.section_id"

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*)"+from+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count live pages: %w", err)
	}

	cols := prefixColumns("p", pageColumns)
	args = append(args, limit, offset)
	query := "SELECT " + cols + from + clause +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list live pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, count, rows.Err()
}

// FindByID retrieves a page by ID. Returns nil if not found.
func (s *PageStore) FindByID(id int64) (*models.Page, error) {
	p, err := scanPage(s.db.QueryRow(
		"SELECT "+pageColumns+" FROM pages WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// FindLiveBySlug retrieves a published page by its slug. Used by the
// public projection, which addresses content by slug only.
func (s *PageStore) FindLiveBySlug(slug string) (*models.Page, error) {
	p, err := scanPage(s.db.QueryRow(
		"SELECT "+pageColumns+" FROM pages WHERE slug = $1 AND status = 'published'", slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find live page by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new page and returns it with generated fields.
// If the page is created directly in published status, published_at is
// stamped as part of the same write. A slug collision returns
// ErrDuplicateSlug.
func (s *PageStore) Create(p *models.Page) (*models.Page, error) {
	if p.Status == models.StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	created, err := scanPage(s.db.QueryRow(`
		INSERT INTO pages (title, slug, status, body, excerpt,
			featured_image_id, section_id, template_name, author_id, published_at,
			requires_auth, custom_css, custom_js,
			meta_title, meta_description, canonical_url, og_title, og_description,
			og_image, robots, structured_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING `+pageColumns,
		p.Title, p.Slug, p.Status, p.Body, p.Excerpt,
		p.FeaturedImageID, p.SectionID, p.TemplateName, p.AuthorID, p.PublishedAt,
		p.RequiresAuth, p.CustomCSS, p.CustomJS,
		p.SEO.MetaTitle, p.SEO.MetaDescription, p.SEO.CanonicalURL,
		p.SEO.OGTitle, p.SEO.OGDescription, p.SEO.OGImage,
		p.SEO.Robots, p.SEO.StructuredData,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if refErr := invalidReference(err, "pages"); refErr != nil {
		return nil, refErr
	}
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return created, nil
}

// Update modifies an existing page. The first transition into published
// status stamps published_at; a page that already carries a publish
// timestamp keeps it across every later save, including archiving and
// reverting to draft. The author is never reassigned.
func (s *PageStore) Update(p *models.Page) error {
	if p.Status == models.StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE pages SET
			title = $1, slug = $2, status = $3, body = $4, excerpt = $5,
			featured_image_id = $6, section_id = $7, template_name = $8,
			published_at = $9, requires_auth = $10, custom_css = $11, custom_js = $12,
			meta_title = $13, meta_description = $14, canonical_url = $15,
			og_title = $16, og_description = $17, og_image = $18,
			robots = $19, structured_data = $20, updated_at = NOW()
		WHERE id = $21
	`, p.Title, p.Slug, p.Status, p.Body, p.Excerpt,
		p.FeaturedImageID, p.SectionID, p.TemplateName,
		p.PublishedAt, p.RequiresAuth, p.CustomCSS, p.CustomJS,
		p.SEO.MetaTitle, p.SEO.MetaDescription, p.SEO.CanonicalURL,
		p.SEO.OGTitle, p.SEO.OGDescription, p.SEO.OGImage,
		p.SEO.Robots, p.SEO.StructuredData, p.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if refErr := invalidReference(err, "pages"); refErr != nil {
		return refErr
	}
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

// Delete removes a page by ID. Block associations cascade.
func (s *PageStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
