// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/render"

	"presskit/internal/middleware"
	"presskit/internal/models"
	"presskit/internal/storage"
	"presskit/internal/store"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// presignExpiry is how long a presigned URL for private files is valid.
	presignExpiry = 1 * time.Hour
)

// Media groups the media asset handlers. File bytes go to object storage;
// only metadata lands in the database.
type Media struct {
	media   *store.MediaStore
	storage *storage.Client
}

// NewMedia creates a new Media handler group. The storage client may be
// nil, in which case uploads answer 503.
func NewMedia(media *store.MediaStore, sc *storage.Client) *Media {
	return &Media{media: media, storage: sc}
}

// mediaView is a media record plus its resolved URL.
type mediaView struct {
	models.Media
	URL string `json:"url,omitempty"`
}

func (h *Media) view(m models.Media) mediaView {
	v := mediaView{Media: m}
	if h.storage != nil && m.IsPublic {
		v.URL = h.storage.FileURL(m.S3Key)
	}
	return v
}

// List returns media items newest first.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, count, err := h.media.List(limit, offset)
	if err != nil {
		slog.Error("list media failed", "error", err)
		respondServerError(w, r)
		return
	}

	results := make([]mediaView, 0, len(items))
	for _, m := range items {
		results = append(results, h.view(m))
	}
	respondList(w, r, count, results)
}

// Get returns one media item. Private files come back with a short-lived
// presigned URL instead of a direct one.
func (h *Media) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "media")
		return
	}

	m, err := h.media.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err)
		respondServerError(w, r)
		return
	}
	if m == nil {
		respondNotFound(w, r, "media")
		return
	}

	v := h.view(*m)
	if h.storage != nil && !m.IsPublic {
		url, err := h.storage.PresignedURL(r.Context(), m.Bucket, m.S3Key, presignExpiry)
		if err != nil {
			slog.Error("presign failed", "error", err, "key", m.S3Key)
			respondServerError(w, r)
			return
		}
		v.URL = url
	}
	render.JSON(w, r, v)
}

// Upload handles multipart file upload to object storage. The content
// type is sniffed from the first 512 bytes; the coarse file type comes
// from the extension.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, r, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	// Limit request body to maxUploadSize plus overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, r, http.StatusRequestEntityTooLarge, "file too large (max 50 MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondFieldErrors(w, r, fieldErrors{"file": "no file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, r, http.StatusRequestEntityTooLarge, "file too large (max 50 MB)")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		slog.Error("upload read failed", "error", err)
		respondServerError(w, r)
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType reports XML or plain text for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		slog.Error("upload seek failed", "error", err)
		respondServerError(w, r)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("upload read failed", "error", err)
		respondServerError(w, r)
		return
	}

	isPublic := r.FormValue("is_public") != "false"
	bucket := h.storage.BucketFor(isPublic)
	s3Key := storage.ObjectKey(header.Filename)

	ctx := r.Context()
	if err := h.storage.Upload(ctx, bucket, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		respondServerError(w, r)
		return
	}

	m := &models.Media{
		Filename:     path.Base(s3Key),
		OriginalName: header.Filename,
		ContentType:  contentType,
		FileType:     models.ClassifyFile(header.Filename),
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       bucket,
		S3Key:        s3Key,
		AltText:      r.FormValue("alt_text"),
		Caption:      r.FormValue("caption"),
		Tags:         strings.Join(models.SplitTags(r.FormValue("tags")), ", "),
		IsPublic:     isPublic,
		UploaderID:   middleware.IdentityFromCtx(ctx).UserID,
	}

	created, err := h.media.Create(m)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		respondServerError(w, r)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.view(*created))
}

// Delete removes a media item from storage and the database. Featured
// image references are nulled by the schema.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondNotFound(w, r, "media")
		return
	}

	m, err := h.media.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err)
		respondServerError(w, r)
		return
	}
	if m == nil {
		respondNotFound(w, r, "media")
		return
	}

	if h.storage != nil {
		if err := h.storage.Delete(r.Context(), m.Bucket, m.S3Key); err != nil {
			// Keep going; an orphaned object beats a stuck record.
			slog.Warn("s3 delete failed", "error", err, "key", m.S3Key)
		}
	}

	if err := h.media.Delete(id); err != nil {
		slog.Error("delete media failed", "error", err)
		respondServerError(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
