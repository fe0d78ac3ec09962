package handlers

import (
	"strings"
	"testing"

	"presskit/internal/models"
)

func TestPageRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       pageRequest
		wantField string
	}{
		{
			name:      "missing title",
			req:       pageRequest{SectionID: 1},
			wantField: "title",
		},
		{
			name:      "whitespace title",
			req:       pageRequest{Title: "   ", SectionID: 1},
			wantField: "title",
		},
		{
			name:      "missing section",
			req:       pageRequest{Title: "Fine"},
			wantField: "section_id",
		},
		{
			name:      "scheduled status rejected for pages",
			req:       pageRequest{Title: "Fine", SectionID: 1, Status: models.StatusScheduled},
			wantField: "status",
		},
		{
			name:      "meta title too long",
			req:       pageRequest{Title: "Fine", SectionID: 1, SEO: models.SEOMeta{MetaTitle: strings.Repeat("x", 71)}},
			wantField: "meta_title",
		},
		{
			name:      "meta description too long",
			req:       pageRequest{Title: "Fine", SectionID: 1, SEO: models.SEOMeta{MetaDescription: strings.Repeat("x", 161)}},
			wantField: "meta_description",
		},
		{
			name:      "excerpt too long",
			req:       pageRequest{Title: "Fine", SectionID: 1, Excerpt: strings.Repeat("x", 501)},
			wantField: "excerpt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.validate()
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("validate() = %v, want error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestPageRequestValidateOK(t *testing.T) {
	req := pageRequest{Title: "Hello World", SectionID: 1}
	if errs := req.validate(); len(errs) > 0 {
		t.Errorf("validate() = %v, want none", errs)
	}
	if req.Status != models.StatusDraft {
		t.Errorf("default status = %q, want draft", req.Status)
	}
}

func TestPageRequestApplyDerivesSlug(t *testing.T) {
	req := pageRequest{Title: "Hello World", SectionID: 1, Status: models.StatusDraft}
	p := &models.Page{}
	req.apply(p)

	if p.Slug != "hello-world" {
		t.Errorf("slug = %q, want derived hello-world", p.Slug)
	}
	if p.TemplateName != "default" {
		t.Errorf("template = %q, want default", p.TemplateName)
	}
	if p.SEO.Robots != models.DefaultRobots {
		t.Errorf("robots = %q, want default applied", p.SEO.Robots)
	}

	// An explicit slug wins over derivation.
	req.Slug = "custom-slug"
	req.apply(p)
	if p.Slug != "custom-slug" {
		t.Errorf("slug = %q, want explicit custom-slug", p.Slug)
	}
}

func TestPostRequestValidate(t *testing.T) {
	req := postRequest{Title: "Post", Status: models.StatusScheduled}
	if errs := req.validate(); len(errs) > 0 {
		t.Errorf("scheduled must be legal for posts: %v", errs)
	}

	req = postRequest{Title: "Post", Status: "bogus"}
	if _, ok := req.validate()["status"]; !ok {
		t.Error("unknown status accepted")
	}

	req = postRequest{Title: "Post", ReadTimeMinutes: -1}
	if _, ok := req.validate()["read_time_minutes"]; !ok {
		t.Error("negative read time accepted")
	}
}

func TestPostRequestApplyNormalizesTags(t *testing.T) {
	req := postRequest{Title: "Tagged", Tags: " go ,, web,  cms "}
	p := &models.BlogPost{}
	req.apply(p)

	if p.Tags != "go, web, cms" {
		t.Errorf("tags = %q, want normalized list", p.Tags)
	}
	if p.ReadTimeMinutes != models.DefaultReadTimeMinutes {
		t.Errorf("read time = %d, want default", p.ReadTimeMinutes)
	}
	if !p.AllowComments {
		t.Error("allow_comments default should be true")
	}
}

func TestBlockRequestApplyDerivesIdentifier(t *testing.T) {
	req := blockRequest{Name: "Footer CTA"}
	if errs := req.validate(); len(errs) > 0 {
		t.Fatalf("validate: %v", errs)
	}
	b := &models.ContentBlock{}
	req.apply(b)

	if b.Identifier != "footer-cta" {
		t.Errorf("identifier = %q, want derived footer-cta", b.Identifier)
	}
	if b.BlockType != models.BlockText {
		t.Errorf("block type = %q, want text default", b.BlockType)
	}
	if !b.IsActive {
		t.Error("is_active default should be true")
	}
}

func TestSectionRequestValidate(t *testing.T) {
	req := sectionRequest{}
	if _, ok := req.validate()["name"]; !ok {
		t.Error("empty name accepted")
	}

	req = sectionRequest{Name: "Blog", SectionType: "bogus"}
	if _, ok := req.validate()["section_type"]; !ok {
		t.Error("unknown section type accepted")
	}

	req = sectionRequest{Name: "Blog"}
	if errs := req.validate(); len(errs) > 0 {
		t.Errorf("validate: %v", errs)
	}
	if req.SectionType != models.SectionCustom {
		t.Errorf("default section type = %q, want custom", req.SectionType)
	}
}
