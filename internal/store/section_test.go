package store

import (
	"testing"

	"presskit/internal/models"
)

func TestSectionCreateAndFind(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)

	s := randSlug("about")
	created, err := sections.Create(&models.Section{
		Name:        "About",
		Slug:        s,
		SectionType: models.SectionAbout,
		IsActive:    true,
		ShowInNav:   true,
		SortOrder:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { sections.Delete(created.ID) })

	got, err := sections.FindBySlug(s)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("FindBySlug returned %+v", got)
	}
	if got.SectionType != models.SectionAbout || got.SortOrder != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSectionDuplicateSlugFails(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)

	s := randSlug("services")
	first, err := sections.Create(&models.Section{
		Name: "Services", Slug: s, SectionType: models.SectionServices, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	t.Cleanup(func() { sections.Delete(first.ID) })

	if _, err := sections.Create(&models.Section{
		Name: "Other", Slug: s, SectionType: models.SectionCustom, IsActive: true,
	}); err != ErrDuplicateSlug {
		t.Errorf("Create with taken slug: got %v, want ErrDuplicateSlug", err)
	}
}

func TestSectionListPublicHidesInactive(t *testing.T) {
	db := testDB(t)
	sections := NewSectionStore(db)

	visible, err := sections.Create(&models.Section{
		Name: "Visible", Slug: randSlug("visible"), SectionType: models.SectionCustom,
		IsActive: true, ShowInNav: true,
	})
	if err != nil {
		t.Fatalf("Create visible: %v", err)
	}
	t.Cleanup(func() { sections.Delete(visible.ID) })

	hidden, err := sections.Create(&models.Section{
		Name: "Hidden", Slug: randSlug("hidden"), SectionType: models.SectionCustom,
		IsActive: false, ShowInNav: true,
	})
	if err != nil {
		t.Fatalf("Create hidden: %v", err)
	}
	t.Cleanup(func() { sections.Delete(hidden.ID) })

	items, err := sections.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	for _, s := range items {
		if s.ID == hidden.ID {
			t.Error("inactive section appeared in the public listing")
		}
	}
}

func TestSectionDeleteCascadesPages(t *testing.T) {
	db := testDB(t)
	user := fixtureUser(t, db)
	sections := NewSectionStore(db)
	pages := NewPageStore(db)

	sec, err := sections.Create(&models.Section{
		Name: "Doomed", Slug: randSlug("doomed"), SectionType: models.SectionCustom, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create section: %v", err)
	}

	p, err := pages.Create(&models.Page{
		Title: "Orphan", Slug: randSlug("orphan"), Status: models.StatusDraft,
		SectionID: sec.ID, TemplateName: "default", AuthorID: user.ID,
	})
	if err != nil {
		t.Fatalf("Create page: %v", err)
	}

	if err := sections.Delete(sec.ID); err != nil {
		t.Fatalf("Delete section: %v", err)
	}

	got, err := pages.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Error("page survived its section's deletion")
	}
}
