// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// BlockType identifies the kind of reusable content block.
type BlockType string

const (
	BlockText        BlockType = "text"
	BlockImage       BlockType = "image"
	BlockVideo       BlockType = "video"
	BlockGallery     BlockType = "gallery"
	BlockTestimonial BlockType = "testimonial"
	BlockCTA         BlockType = "cta"
	BlockCustom      BlockType = "custom"
)

// ValidBlockType reports whether t is one of the known block types.
func ValidBlockType(t BlockType) bool {
	switch t {
	case BlockText, BlockImage, BlockVideo, BlockGallery, BlockTestimonial, BlockCTA, BlockCustom:
		return true
	}
	return false
}

// ContentBlock is a reusable fragment referenced by zero or more pages.
// The page association is not ownership: deleting a block removes the
// associations, never the pages.
type ContentBlock struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Identifier string    `json:"identifier"`
	BlockType  BlockType `json:"block_type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	ImageURL   string    `json:"image_url"`
	LinkURL    string    `json:"link_url"`
	ButtonText string    `json:"button_text"`
	CSSClasses string    `json:"css_classes"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// UsageCount is populated by store methods that join the association
	// table; it is not a column on the blocks table itself.
	UsageCount int `json:"usage_count"`
}

// PageBlock is one row of the page↔block association table, carrying the
// per-pair ordering and caption used in gallery-like contexts.
type PageBlock struct {
	PageID    int64     `json:"page_id"`
	BlockID   int64     `json:"block_id"`
	SortOrder int       `json:"sort_order"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachedBlock is a content block joined with its association metadata
// for one particular page.
type AttachedBlock struct {
	ContentBlock
	SortOrder int    `json:"sort_order"`
	Caption   string `json:"caption"`
}
