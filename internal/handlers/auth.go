// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"presskit/internal/auth"
	"presskit/internal/middleware"
	"presskit/internal/store"
)

// Auth groups the token-based authentication handlers.
type Auth struct {
	issuer    *auth.Issuer
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(issuer *auth.Issuer, userStore *store.UserStore) *Auth {
	return &Auth{issuer: issuer, userStore: userStore}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a fresh access/refresh pair.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.userStore.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondServerError(w, r)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		respondError(w, r, http.StatusUnauthorized, "invalid email or password")
		return
	}

	pair, err := a.issuer.IssuePair(user)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondServerError(w, r)
		return
	}
	render.JSON(w, r, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh exchanges a valid refresh token for a new token pair. The user
// is re-read so a revoked account stops refreshing immediately.
func (a *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := a.issuer.Verify(req.Refresh, auth.TypeRefresh)
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := a.userStore.FindByID(claims.UserID)
	if err != nil {
		slog.Error("refresh lookup failed", "error", err)
		respondServerError(w, r)
		return
	}
	if user == nil {
		respondError(w, r, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	pair, err := a.issuer.IssuePair(user)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondServerError(w, r)
		return
	}
	render.JSON(w, r, pair)
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify answers 204 when the supplied access token is valid.
func (a *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := a.issuer.Verify(req.Token, auth.TypeAccess); err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if identity == nil {
		respondError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := a.userStore.FindByID(identity.UserID)
	if err != nil {
		slog.Error("me lookup failed", "error", err)
		respondServerError(w, r)
		return
	}
	if user == nil {
		respondNotFound(w, r, "user")
		return
	}
	render.JSON(w, r, user)
}
