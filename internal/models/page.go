// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Status represents the publishing state of a page or blog post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled" // blog posts only
	StatusArchived  Status = "archived"
)

// ValidPageStatus reports whether s is a legal page status. Pages do not
// support scheduling.
func ValidPageStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ValidPostStatus reports whether s is a legal blog post status.
func ValidPostStatus(s Status) bool {
	return s == StatusScheduled || ValidPageStatus(s)
}

// Page is a static page owned by a section. The author is assigned at
// creation and never reassigned; published_at is stamped on the first
// transition into the published status and preserved from then on.
type Page struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Status          Status     `json:"status"`
	Body            string     `json:"body"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImageID *int64     `json:"featured_image_id,omitempty"`
	SectionID       int64      `json:"section_id"`
	TemplateName    string     `json:"template_name"`
	AuthorID        int64      `json:"author_id"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	RequiresAuth    bool       `json:"requires_auth"`
	CustomCSS       string     `json:"custom_css"`
	CustomJS        string     `json:"custom_js"`
	SEO             SEOMeta    `json:"seo"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsPublished returns true if the page is in published status.
func (p *Page) IsPublished() bool {
	return p.Status == StatusPublished
}
