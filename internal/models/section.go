// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SectionType categorizes a content section for navigation purposes.
type SectionType string

const (
	SectionHome     SectionType = "home"
	SectionAbout    SectionType = "about"
	SectionServices SectionType = "services"
	SectionBlog     SectionType = "blog"
	SectionContact  SectionType = "contact"
	SectionCustom   SectionType = "custom"
)

// ValidSectionType reports whether t is one of the known section types.
func ValidSectionType(t SectionType) bool {
	switch t {
	case SectionHome, SectionAbout, SectionServices, SectionBlog, SectionContact, SectionCustom:
		return true
	}
	return false
}

// Section groups pages and drives the public navigation. Deleting a
// section cascades to the pages it owns.
type Section struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	SectionType SectionType `json:"section_type"`
	Description string      `json:"description"`
	IsActive    bool        `json:"is_active"`
	ShowInNav   bool        `json:"show_in_nav"`
	NavTitle    string      `json:"nav_title"`
	SortOrder   int         `json:"sort_order"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DisplayName returns the navigation title, falling back to the name.
func (s *Section) DisplayName() string {
	if s.NavTitle != "" {
		return s.NavTitle
	}
	return s.Name
}
