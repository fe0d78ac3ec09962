// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Presskit
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateSlug is returned when an insert or update collides with the
// unique index on a slug or identifier column. Slug uniqueness is enforced
// only at the storage layer: concurrent creates race freely and the loser
// surfaces this error, which handlers report as a validation failure.
var ErrDuplicateSlug = errors.New("slug already exists")

// InvalidReferenceError is returned when a write points at a row that
// does not exist, such as a dangling featured_image_id. Field names the
// referencing column so handlers can report a field-level error.
type InvalidReferenceError struct {
	Field string
}

func (e *InvalidReferenceError) Error() string {
	return e.Field + " references a missing row"
}

// PostgreSQL error codes for unique_violation and foreign_key_violation.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a PostgreSQL unique-index
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// invalidReference translates a PostgreSQL foreign-key violation into an
// InvalidReferenceError, or returns nil when err is something else.
// Default constraint names have the shape <table>_<column>_fkey; the
// table prefix is stripped to recover the referencing column.
func invalidReference(err error, table string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return nil
	}
	field := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	field = strings.TrimPrefix(field, table+"_")
	if field == "" {
		field = "reference"
	}
	return &InvalidReferenceError{Field: field}
}

// prefixColumns qualifies every column in a comma-separated column list
// with a table alias, for queries that join other tables.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
