// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP handlers for the API.
// Handler groups wrap stores and respond through go-chi/render; every
// list endpoint answers with {"count": N, "results": [...]}.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"presskit/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// listResponse is the envelope for every paginated listing. Count is the
// total number of rows matching the filter, not the page size.
type listResponse struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

// respondList writes a list envelope, mapping a nil slice to an empty one
// so clients always receive a JSON array.
func respondList(w http.ResponseWriter, r *http.Request, count int, results any) {
	render.JSON(w, r, listResponse{Count: count, Results: results})
}

// respondError writes {"error": msg} with the given status.
func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

// respondFieldErrors writes {"errors": {field: message}} as a 400.
func respondFieldErrors(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]any{"errors": errs})
}

// respondConstraintError maps constraint violations from page and post
// writes to field-level 400s: slug collisions and dangling references
// (a section_id or featured_image_id pointing at a deleted row) are
// caller mistakes, not server failures. Returns false when err is not a
// constraint violation so the caller can fall through to its own
// handling.
func respondConstraintError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == store.ErrDuplicateSlug {
		respondFieldErrors(w, r, fieldErrors{"slug": "slug already exists"})
		return true
	}
	var refErr *store.InvalidReferenceError
	if errors.As(err, &refErr) {
		respondFieldErrors(w, r, fieldErrors{refErr.Field: "referenced record does not exist"})
		return true
	}
	return false
}

// respondNotFound writes a 404 with a short noun-based message.
func respondNotFound(w http.ResponseWriter, r *http.Request, noun string) {
	respondError(w, r, http.StatusNotFound, noun+" not found")
}

// respondServerError logs nothing itself; callers log before responding.
func respondServerError(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusInternalServerError, "internal server error")
}

// pagination reads limit/offset query parameters, clamping limit to
// [1, maxPageSize] with a default of defaultPageSize.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// urlID parses a numeric chi URL parameter. Returns (0, false) when the
// parameter is missing or not a positive integer.
func urlID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryBool parses an optional boolean query parameter. Returns nil when
// the parameter is absent or unparseable.
func queryBool(r *http.Request, param string) *bool {
	v := r.URL.Query().Get(param)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// urlSlug reads the {slug} URL parameter.
func urlSlug(r *http.Request) string {
	return chi.URLParam(r, "slug")
}

// writeCachedJSON serves a cached projection verbatim.
func writeCachedJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// queryInt64 parses an optional numeric query parameter, 0 when absent.
func queryInt64(r *http.Request, param string) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(param), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
