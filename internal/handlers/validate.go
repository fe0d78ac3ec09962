// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"presskit/internal/models"
)

// Validation limits for content fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxExcerptLen  = 500
	maxMetaTitle   = 70
	maxMetaDesc    = 160
	maxNameLen     = 200
	maxCategoryLen = 100
)

// fieldErrors accumulates per-field validation messages.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) {
	if _, dup := fe[field]; !dup {
		fe[field] = msg
	}
}

// validateTitle checks the shared title/slug pair used by pages and posts.
func (fe fieldErrors) validateTitle(title, slug string) {
	if strings.TrimSpace(title) == "" {
		fe.add("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		fe.add("title", "title is too long (max 300 characters)")
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		fe.add("slug", "slug is too long (max 300 characters)")
	}
}

// validateSEO checks the embedded SEO metadata lengths.
func (fe fieldErrors) validateSEO(seo models.SEOMeta) {
	if utf8.RuneCountInString(seo.MetaTitle) > maxMetaTitle {
		fe.add("meta_title", "meta title is too long (max 70 characters)")
	}
	if utf8.RuneCountInString(seo.MetaDescription) > maxMetaDesc {
		fe.add("meta_description", "meta description is too long (max 160 characters)")
	}
}

// validateExcerpt checks the excerpt length shared by pages and posts.
func (fe fieldErrors) validateExcerpt(excerpt string) {
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		fe.add("excerpt", "excerpt is too long (max 500 characters)")
	}
}
