// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// FileType is the coarse classification of an uploaded file, derived
// from its extension.
type FileType string

const (
	FileImage    FileType = "image"
	FileDocument FileType = "document"
	FileVideo    FileType = "video"
	FileAudio    FileType = "audio"
	FileOther    FileType = "other"
)

// fileTypeByExt maps lowercase file extensions to their classification.
var fileTypeByExt = map[string]FileType{
	".jpg": FileImage, ".jpeg": FileImage, ".png": FileImage,
	".gif": FileImage, ".webp": FileImage, ".svg": FileImage,
	".pdf": FileDocument, ".doc": FileDocument, ".docx": FileDocument,
	".txt": FileDocument, ".rtf": FileDocument,
	".mp4": FileVideo, ".avi": FileVideo, ".mov": FileVideo,
	".wmv": FileVideo, ".flv": FileVideo,
	".mp3": FileAudio, ".wav": FileAudio, ".flac": FileAudio, ".aac": FileAudio,
}

// ClassifyFile returns the file type for a filename based on its extension.
func ClassifyFile(filename string) FileType {
	ext := strings.ToLower(path.Ext(filename))
	if t, ok := fileTypeByExt[ext]; ok {
		return t
	}
	return FileOther
}

// Media represents a file uploaded to S3-compatible object storage.
// Metadata is stored in PostgreSQL; the file itself lives in the bucket.
type Media struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	FileType     FileType  `json:"file_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Bucket       string    `json:"bucket"`
	S3Key        string    `json:"s3_key"`
	AltText      string    `json:"alt_text"`
	Caption      string    `json:"caption"`
	Tags         string    `json:"tags"`
	IsPublic     bool      `json:"is_public"`
	UploaderID   int64     `json:"uploader_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return m.FileType == FileImage
}

// HumanSize returns a human-readable file size string.
func (m *Media) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case m.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(m.SizeBytes)/float64(mb))
	case m.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(m.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", m.SizeBytes)
	}
}

// TagList returns the media tags as a normalized list.
func (m *Media) TagList() []string {
	return SplitTags(m.Tags)
}
