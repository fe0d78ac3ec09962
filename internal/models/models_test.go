package models

import (
	"testing"
	"time"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "go, web, cms",
			want:  []string{"go", "web", "cms"},
		},
		{
			name:  "extra whitespace and empties",
			input: "foo, bar ,,baz",
			want:  []string{"foo", "bar", "baz"},
		},
		{
			name:  "single tag",
			input: "golang",
			want:  []string{"golang"},
		},
		{
			name:  "duplicates kept",
			input: "go, go, web",
			want:  []string{"go", "go", "web"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only commas and spaces",
			input: " , ,, ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitTags(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		filename string
		want     FileType
	}{
		{"photo.jpg", FileImage},
		{"photo.JPEG", FileImage},
		{"diagram.svg", FileImage},
		{"report.pdf", FileDocument},
		{"notes.txt", FileDocument},
		{"clip.mp4", FileVideo},
		{"track.mp3", FileAudio},
		{"archive.zip", FileOther},
		{"noextension", FileOther},
		{"path/to/banner.webp", FileImage},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ClassifyFile(tt.filename); got != tt.want {
				t.Errorf("ClassifyFile(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestSEOMetaApplyDefaults(t *testing.T) {
	var seo SEOMeta
	seo.ApplyDefaults()
	if seo.Robots != DefaultRobots {
		t.Errorf("Robots = %q, want %q", seo.Robots, DefaultRobots)
	}

	seo = SEOMeta{Robots: "noindex"}
	seo.ApplyDefaults()
	if seo.Robots != "noindex" {
		t.Errorf("Robots = %q, want explicit value kept", seo.Robots)
	}
}

func TestBlogPostIsLive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		post BlogPost
		want bool
	}{
		{
			name: "published in the past",
			post: BlogPost{Status: StatusPublished, PublishedAt: &past},
			want: true,
		},
		{
			name: "published with future timestamp",
			post: BlogPost{Status: StatusPublished, PublishedAt: &future},
			want: false,
		},
		{
			name: "published without timestamp",
			post: BlogPost{Status: StatusPublished},
			want: false,
		},
		{
			name: "draft with past timestamp",
			post: BlogPost{Status: StatusDraft, PublishedAt: &past},
			want: false,
		},
		{
			name: "archived keeps timestamp but is not live",
			post: BlogPost{Status: StatusArchived, PublishedAt: &past},
			want: false,
		},
		{
			name: "scheduled is not live",
			post: BlogPost{Status: StatusScheduled, ScheduledFor: &future},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.IsLive(now); got != tt.want {
				t.Errorf("IsLive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusValidation(t *testing.T) {
	if ValidPageStatus(StatusScheduled) {
		t.Error("pages must not accept the scheduled status")
	}
	if !ValidPostStatus(StatusScheduled) {
		t.Error("posts must accept the scheduled status")
	}
	for _, s := range []Status{StatusDraft, StatusPublished, StatusArchived} {
		if !ValidPageStatus(s) {
			t.Errorf("ValidPageStatus(%q) = false, want true", s)
		}
		if !ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = false, want true", s)
		}
	}
	if ValidPageStatus("bogus") || ValidPostStatus("bogus") {
		t.Error("unknown status accepted")
	}
}

func TestSectionDisplayName(t *testing.T) {
	s := Section{Name: "Blog", NavTitle: "Latest News"}
	if got := s.DisplayName(); got != "Latest News" {
		t.Errorf("DisplayName = %q, want nav title", got)
	}
	s.NavTitle = ""
	if got := s.DisplayName(); got != "Blog" {
		t.Errorf("DisplayName = %q, want fallback to name", got)
	}
}

func TestMediaHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2 KB"},
		{5 << 20, "5.0 MB"},
	}

	for _, tt := range tests {
		m := Media{SizeBytes: tt.bytes}
		if got := m.HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
