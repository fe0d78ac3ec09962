// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// DefaultReadTimeMinutes is the estimated read time assigned when the
// author does not supply one.
const DefaultReadTimeMinutes = 5

// BlogPost is a dated article. In addition to the page lifecycle it
// supports the scheduled status; scheduled_for is informational only and
// nothing in this process promotes a scheduled post at that time.
type BlogPost struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Status          Status     `json:"status"`
	Body            string     `json:"body"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImageID *int64     `json:"featured_image_id,omitempty"`
	Tags            string     `json:"tags"`
	Category        string     `json:"category"`
	AuthorID        int64      `json:"author_id"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
	AllowComments   bool       `json:"allow_comments"`
	IsFeatured      bool       `json:"is_featured"`
	ReadTimeMinutes int        `json:"read_time_minutes"`
	SEO             SEOMeta    `json:"seo"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

// IsLive returns true if the post is visible on the public projection:
// published and past its effective publish time.
func (p *BlogPost) IsLive(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// TagList splits the stored tag string on commas, trimming surrounding
// whitespace and discarding empty segments. Duplicates are kept as stored.
func (p *BlogPost) TagList() []string {
	return SplitTags(p.Tags)
}

// SplitTags normalizes a comma-separated tag string into a list.
func SplitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
