package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "defaults",
			query:      "",
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "explicit values",
			query:      "?limit=50&offset=100",
			wantLimit:  50,
			wantOffset: 100,
		},
		{
			name:       "limit clamped to max",
			query:      "?limit=500",
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name:       "zero limit falls back to default",
			query:      "?limit=0",
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "negative values ignored",
			query:      "?limit=-5&offset=-10",
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "garbage ignored",
			query:      "?limit=abc&offset=xyz",
			wantLimit:  20,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/"+tt.query, nil)
			limit, offset := pagination(r)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("pagination(%q) = (%d, %d), want (%d, %d)",
					tt.query, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?featured=true&active=false&junk=banana", nil)

	if b := queryBool(r, "featured"); b == nil || !*b {
		t.Error("featured=true not parsed")
	}
	if b := queryBool(r, "active"); b == nil || *b {
		t.Error("active=false not parsed")
	}
	if b := queryBool(r, "junk"); b != nil {
		t.Error("unparseable value should yield nil")
	}
	if b := queryBool(r, "missing"); b != nil {
		t.Error("missing parameter should yield nil")
	}
}
