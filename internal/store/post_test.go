package store

import (
	"testing"
	"time"

	"presskit/internal/models"
)

func TestPostFutureDatedIsNotLive(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	posts := NewPostStore(db)

	future := time.Now().Add(time.Hour)
	s := randSlug("future-post")
	created, err := posts.Create(&models.BlogPost{
		Title:       "From The Future",
		Slug:        s,
		Status:      models.StatusPublished,
		AuthorID:    user.ID,
		PublishedAt: &future,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { posts.Delete(created.ID) })

	got, err := posts.FindLiveBySlug(s)
	if err != nil {
		t.Fatalf("FindLiveBySlug: %v", err)
	}
	if got != nil {
		t.Error("future-dated post must not be live")
	}
}

func TestPostPublishStampsOnce(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	posts := NewPostStore(db)

	p, err := posts.Create(&models.BlogPost{
		Title:    "Draft Post",
		Slug:     randSlug("draft-post"),
		Status:   models.StatusDraft,
		AuthorID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { posts.Delete(p.ID) })

	if p.PublishedAt != nil {
		t.Fatal("draft post got published_at")
	}
	if p.ReadTimeMinutes != models.DefaultReadTimeMinutes {
		t.Errorf("read_time_minutes = %d, want default %d", p.ReadTimeMinutes, models.DefaultReadTimeMinutes)
	}

	p.Status = models.StatusPublished
	if err := posts.Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.PublishedAt == nil {
		t.Fatal("expected published_at to be stamped")
	}
	first := *p.PublishedAt

	p.Status = models.StatusArchived
	if err := posts.Update(p); err != nil {
		t.Fatalf("Update to archived: %v", err)
	}
	got, err := posts.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(first) {
		t.Errorf("archive moved published_at: %v, want %v", got.PublishedAt, first)
	}
}

func TestPostScheduledIsNotLive(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	posts := NewPostStore(db)

	future := time.Now().Add(24 * time.Hour)
	s := randSlug("scheduled-post")
	created, err := posts.Create(&models.BlogPost{
		Title:        "Scheduled",
		Slug:         s,
		Status:       models.StatusScheduled,
		AuthorID:     user.ID,
		ScheduledFor: &future,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { posts.Delete(created.ID) })

	if created.PublishedAt != nil {
		t.Error("scheduled post got published_at")
	}

	got, err := posts.FindLiveBySlug(s)
	if err != nil {
		t.Fatalf("FindLiveBySlug: %v", err)
	}
	if got != nil {
		t.Error("scheduled post must not be live")
	}
}

func TestPostListLiveFilters(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	posts := NewPostStore(db)

	category := randSlug("cat")
	fixtures := []models.BlogPost{
		{Title: "Go Post", Tags: "go, web", Category: category, Status: models.StatusPublished, IsFeatured: true},
		{Title: "Web Post", Tags: "web", Category: category, Status: models.StatusPublished},
		{Title: "Hidden Draft", Tags: "go", Category: category, Status: models.StatusDraft},
	}
	for i := range fixtures {
		fixtures[i].Slug = randSlug("live-filter")
		fixtures[i].AuthorID = user.ID
		created, err := posts.Create(&fixtures[i])
		if err != nil {
			t.Fatalf("Create %q: %v", fixtures[i].Title, err)
		}
		t.Cleanup(func() { posts.Delete(created.ID) })
	}

	// Category narrows to the two published fixtures.
	items, count, err := posts.ListLive(LivePostFilter{Category: category, Limit: 10})
	if err != nil {
		t.Fatalf("ListLive: %v", err)
	}
	if count != 2 || len(items) != 2 {
		t.Fatalf("category filter: count=%d len=%d, want 2/2", count, len(items))
	}

	// Every requested tag must match.
	items, count, err = posts.ListLive(LivePostFilter{Category: category, Tags: []string{"go", "web"}, Limit: 10})
	if err != nil {
		t.Fatalf("ListLive tags: %v", err)
	}
	if count != 1 || len(items) != 1 || items[0].Title != "Go Post" {
		t.Fatalf("tags filter: count=%d, want the single go+web post", count)
	}

	// Featured only.
	items, count, err = posts.ListLive(LivePostFilter{Category: category, FeaturedOnly: true, Limit: 10})
	if err != nil {
		t.Fatalf("ListLive featured: %v", err)
	}
	if count != 1 || len(items) != 1 || !items[0].IsFeatured {
		t.Fatalf("featured filter: count=%d, want 1 featured post", count)
	}
}

func TestPostCategoriesAndTags(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	posts := NewPostStore(db)

	category := randSlug("aggcat")
	tagA := randSlug("taga")
	tagB := randSlug("tagb")

	fixtures := []models.BlogPost{
		{Title: "One", Tags: tagB + ", " + tagA, Category: category, Status: models.StatusPublished},
		{Title: "Two", Tags: tagA, Category: category, Status: models.StatusPublished},
		{Title: "Three", Tags: tagA, Category: category, Status: models.StatusDraft},
	}
	for i := range fixtures {
		fixtures[i].Slug = randSlug("agg")
		fixtures[i].AuthorID = user.ID
		created, err := posts.Create(&fixtures[i])
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		t.Cleanup(func() { posts.Delete(created.ID) })
	}

	categories, err := posts.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	found := 0
	for _, c := range categories {
		if c == category {
			found++
		}
	}
	if found != 1 {
		t.Errorf("category %q appeared %d times, want exactly once", category, found)
	}

	tags, err := posts.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	var sawA, sawB int
	for _, tag := range tags {
		switch tag {
		case tagA:
			sawA++
		case tagB:
			sawB++
		}
	}
	if sawA != 1 || sawB != 1 {
		t.Errorf("tags deduplication: %q seen %d times, %q seen %d times", tagA, sawA, tagB, sawB)
	}
}
