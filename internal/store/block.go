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

// BlockStore handles all content-block database operations, including the
// page association table.
type BlockStore struct {
	db *sql.DB
}

// NewBlockStore creates a new BlockStore with the given database connection.
func NewBlockStore(db *sql.DB) *BlockStore {
	return &BlockStore{db: db}
}

const blockColumns = `b.id, b.name, b.identifier, b.block_type, b.title, b.body,
	b.image_url, b.link_url, b.button_text, b.css_classes, b.is_active,
	b.created_at, b.updated_at`

// blockSelect joins the association table so every listing carries the
// number of pages referencing the block.
const blockSelect = `SELECT ` + blockColumns + `,
	(SELECT COUNT(*) FROM page_blocks pb WHERE pb.block_id = b.id) AS usage_count
	FROM content_blocks b`

func scanBlock(row interface{ Scan(...any) error }) (*models.ContentBlock, error) {
	b := &models.ContentBlock{}
	err := row.Scan(
		&b.ID, &b.Name, &b.Identifier, &b.BlockType, &b.Title, &b.Body,
		&b.ImageURL, &b.LinkURL, &b.ButtonText, &b.CSSClasses, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt, &b.UsageCount,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// BlockFilter narrows block listings.
type BlockFilter struct {
	BlockType  models.BlockType
	IsActive   *bool
	Identifier string
	Search     string
	Limit      int
	Offset     int
}

// List returns blocks matching the filter ordered by name, together with
// the total count of matching rows.
func (s *BlockStore) List(f BlockFilter) ([]models.ContentBlock, int, error) {
	var where []string
	var args []any

	if f.BlockType != "" {
		args = append(args, f.BlockType)
		where = append(where, fmt.Sprintf("b.block_type = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("b.is_active = $%d", len(args)))
	}
	if f.Identifier != "" {
		args = append(args, f.Identifier)
		where = append(where, fmt.Sprintf("b.identifier = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(b.name ILIKE $%d OR b.title ILIKE $%d OR b.body ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM content_blocks b"+clause, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count blocks: %w", err)
	}

	query := blockSelect + clause + " ORDER BY b.name"
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var items []models.ContentBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan block: %w", err)
		}
		items = append(items, *b)
	}
	return items, count, rows.Err()
}

// ListActive returns active blocks for the public projection, optionally
// narrowed by type and identifier.
func (s *BlockStore) ListActive(blockType models.BlockType, identifier string) ([]models.ContentBlock, error) {
	where := []string{"b.is_active = TRUE"}
	var args []any

	if blockType != "" {
		args = append(args, blockType)
		where = append(where, fmt.Sprintf("b.block_type = $%d", len(args)))
	}
	if identifier != "" {
		args = append(args, identifier)
		where = append(where, fmt.Sprintf("b.identifier = $%d", len(args)))
	}

	query := blockSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY b.name"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active blocks: %w", err)
	}
	defer rows.Close()

	var items []models.ContentBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves a block by ID. Returns nil if not found.
func (s *BlockStore) FindByID(id int64) (*models.ContentBlock, error) {
	b, err := scanBlock(s.db.QueryRow(blockSelect+" WHERE b.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find block by id: %w", err)
	}
	return b, nil
}

// FindActiveByIdentifier retrieves an active block by its identifier.
// Used by the public projection. Returns nil if not found or inactive.
func (s *BlockStore) FindActiveByIdentifier(identifier string) (*models.ContentBlock, error) {
	b, err := scanBlock(s.db.QueryRow(
		blockSelect+" WHERE b.identifier = $1 AND b.is_active = TRUE", identifier))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find block by identifier: %w", err)
	}
	return b, nil
}

// Create inserts a new block and returns it with generated fields.
// An identifier collision returns ErrDuplicateSlug.
func (s *BlockStore) Create(b *models.ContentBlock) (*models.ContentBlock, error) {
	created, err := scanBlock(s.db.QueryRow(`
		INSERT INTO content_blocks AS b (name, identifier, block_type, title, body,
			image_url, link_url, button_text, css_classes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+blockColumns+`, 0 AS usage_count`,
		b.Name, b.Identifier, b.BlockType, b.Title, b.Body,
		b.ImageURL, b.LinkURL, b.ButtonText, b.CSSClasses, b.IsActive,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}
	return created, nil
}

// Update modifies an existing block.
func (s *BlockStore) Update(b *models.ContentBlock) error {
	_, err := s.db.Exec(`
		UPDATE content_blocks SET
			name = $1, identifier = $2, block_type = $3, title = $4, body = $5,
			image_url = $6, link_url = $7, button_text = $8, css_classes = $9,
			is_active = $10, updated_at = NOW()
		WHERE id = $11
	`, b.Name, b.Identifier, b.BlockType, b.Title, b.Body,
		b.ImageURL, b.LinkURL, b.ButtonText, b.CSSClasses, b.IsActive, b.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("update block: %w", err)
	}
	return nil
}

// Delete removes a block by ID. Page associations cascade; pages do not.
func (s *BlockStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM content_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}

// AttachToPage associates a block with a page, recording the per-pair
// sort order and caption. Re-attaching an existing pair updates both.
func (s *BlockStore) AttachToPage(pageID, blockID int64, sortOrder int, caption string) error {
	_, err := s.db.Exec(`
		INSERT INTO page_blocks (page_id, block_id, sort_order, caption)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (page_id, block_id)
		DO UPDATE SET sort_order = EXCLUDED.sort_order, caption = EXCLUDED.caption
	`, pageID, blockID, sortOrder, caption)
	if err != nil {
		return fmt.Errorf("attach block to page: %w", err)
	}
	return nil
}

// DetachFromPage removes the association between a block and a page.
func (s *BlockStore) DetachFromPage(pageID, blockID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM page_blocks WHERE page_id = $1 AND block_id = $2
	`, pageID, blockID)
	if err != nil {
		return fmt.Errorf("detach block from page: %w", err)
	}
	return nil
}

// ListForPage returns the blocks attached to a page in association order.
func (s *BlockStore) ListForPage(pageID int64) ([]models.AttachedBlock, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+`,
			(SELECT COUNT(*) FROM page_blocks pb2 WHERE pb2.block_id = b.id),
			pb.sort_order, pb.caption
		FROM content_blocks b
		JOIN page_blocks pb ON pb.block_id = b.id
		WHERE pb.page_id = $1
		ORDER BY pb.sort_order, b.name
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list blocks for page: %w", err)
	}
	defer rows.Close()

	var items []models.AttachedBlock
	for rows.Next() {
		var a models.AttachedBlock
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Identifier, &a.BlockType, &a.Title, &a.Body,
			&a.ImageURL, &a.LinkURL, &a.ButtonText, &a.CSSClasses, &a.IsActive,
			&a.CreatedAt, &a.UpdatedAt, &a.UsageCount,
			&a.SortOrder, &a.Caption,
		); err != nil {
			return nil, fmt.Errorf("scan attached block: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
