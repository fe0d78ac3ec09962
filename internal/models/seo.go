// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// DefaultRobots is the robots directive applied when none is supplied.
const DefaultRobots = "index, follow"

// SEOMeta carries search-engine and Open Graph metadata. It has no
// lifecycle of its own: pages and posts embed it by value and it is
// written and deleted with its owner.
type SEOMeta struct {
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	CanonicalURL    string          `json:"canonical_url"`
	OGTitle         string          `json:"og_title"`
	OGDescription   string          `json:"og_description"`
	OGImage         string          `json:"og_image"`
	Robots          string          `json:"robots"`
	StructuredData  json.RawMessage `json:"structured_data,omitempty"`
}

// ApplyDefaults fills the robots directive when the caller left it empty.
func (s *SEOMeta) ApplyDefaults() {
	if s.Robots == "" {
		s.Robots = DefaultRobots
	}
}
