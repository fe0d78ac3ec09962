// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"presskit/internal/models"
)

// MediaStore handles media metadata persistence. File bytes live in
// object storage; only the descriptive record is kept here.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, filename, original_name, content_type, file_type,
	size_bytes, bucket, s3_key, alt_text, caption, tags, is_public,
	uploader_id, created_at`

func scanMedia(row interface{ Scan(...any) error }) (*models.Media, error) {
	m := &models.Media{}
	err := row.Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.ContentType, &m.FileType,
		&m.SizeBytes, &m.Bucket, &m.S3Key, &m.AltText, &m.Caption, &m.Tags,
		&m.IsPublic, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns media items newest first, with the total count.
func (s *MediaStore) List(limit, offset int) ([]models.Media, int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM media").Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+mediaColumns+` FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, count, rows.Err()
}

// FindByID retrieves a media item by ID. Returns nil if not found.
func (s *MediaStore) FindByID(id int64) (*models.Media, error) {
	m, err := scanMedia(s.db.QueryRow(
		"SELECT "+mediaColumns+" FROM media WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Create inserts a media record and returns it with generated fields.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	created, err := scanMedia(s.db.QueryRow(`
		INSERT INTO media (filename, original_name, content_type, file_type,
			size_bytes, bucket, s3_key, alt_text, caption, tags, is_public, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+mediaColumns,
		m.Filename, m.OriginalName, m.ContentType, m.FileType,
		m.SizeBytes, m.Bucket, m.S3Key, m.AltText, m.Caption, m.Tags,
		m.IsPublic, m.UploaderID,
	))
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// Delete removes a media record by ID. Featured-image references on pages
// and posts are set to NULL by the schema.
func (s *MediaStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
