// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"presskit/internal/models"
)

// SectionStore handles all section-related database operations.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

const sectionColumns = `id, name, slug, section_type, description,
	is_active, show_in_nav, nav_title, sort_order, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (*models.Section, error) {
	s := &models.Section{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.SectionType, &s.Description,
		&s.IsActive, &s.ShowInNav, &s.NavTitle, &s.SortOrder,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SectionFilter narrows section listings.
type SectionFilter struct {
	SectionType models.SectionType
	IsActive    *bool
	ShowInNav   *bool
	Search      string
	Limit       int
	Offset      int
}

// List returns sections matching the filter ordered by (sort_order, name),
// together with the total count of matching rows.
func (s *SectionStore) List(f SectionFilter) ([]models.Section, int, error) {
	var where []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.SectionType != "" {
		add("section_type = $%d", f.SectionType)
	}
	if f.IsActive != nil {
		add("is_active = $%d", *f.IsActive)
	}
	if f.ShowInNav != nil {
		add("show_in_nav = $%d", *f.ShowInNav)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sections"+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count sections: %w", err)
	}

	query := "SELECT " + sectionColumns + " FROM sections" + clause + " ORDER BY sort_order, name"
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var items []models.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan section: %w", err)
		}
		items = append(items, *sec)
	}
	return items, count, rows.Err()
}

// ListPublic returns active, navigation-visible sections ordered for display.
func (s *SectionStore) ListPublic() ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT ` + sectionColumns + `
		FROM sections
		WHERE is_active = TRUE AND show_in_nav = TRUE
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list public sections: %w", err)
	}
	defer rows.Close()

	var items []models.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		items = append(items, *sec)
	}
	return items, rows.Err()
}

// FindByID retrieves a section by ID. Returns nil if not found.
func (s *SectionStore) FindByID(id int64) (*models.Section, error) {
	sec, err := scanSection(s.db.QueryRow(
		"SELECT "+sectionColumns+" FROM sections WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return sec, nil
}

// FindBySlug retrieves a section by slug. Returns nil if not found.
func (s *SectionStore) FindBySlug(slug string) (*models.Section, error) {
	sec, err := scanSection(s.db.QueryRow(
		"SELECT "+sectionColumns+" FROM sections WHERE slug = $1", slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find section by slug: %w", err)
	}
	return sec, nil
}

// Create inserts a new section and returns it with generated fields.
// A slug collision returns ErrDuplicateSlug.
func (s *SectionStore) Create(sec *models.Section) (*models.Section, error) {
	created, err := scanSection(s.db.QueryRow(`
		INSERT INTO sections (name, slug, section_type, description,
		                      is_active, show_in_nav, nav_title, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+sectionColumns,
		sec.Name, sec.Slug, sec.SectionType, sec.Description,
		sec.IsActive, sec.ShowInNav, sec.NavTitle, sec.SortOrder,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return created, nil
}

// Update modifies an existing section.
func (s *SectionStore) Update(sec *models.Section) error {
	_, err := s.db.Exec(`
		UPDATE sections SET
			name = $1, slug = $2, section_type = $3, description = $4,
			is_active = $5, show_in_nav = $6, nav_title = $7, sort_order = $8,
			updated_at = NOW()
		WHERE id = $9
	`, sec.Name, sec.Slug, sec.SectionType, sec.Description,
		sec.IsActive, sec.ShowInNav, sec.NavTitle, sec.SortOrder, sec.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Delete removes a section by ID. Owned pages cascade.
func (s *SectionStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
