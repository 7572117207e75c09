// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"net/http"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,username"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for credential exchange.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleSignup creates an account and issues a token.
// POST /api/v1/auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SignupRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("password hash failed")
		rw.InternalError("Could not create account")
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			rw.Conflict("Username already taken")
			return
		}
		rw.DatabaseError(err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
		rw.InternalError("Could not issue token")
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", user.Username).Msg("account created")
	rw.Created(&AuthResponse{Token: token, User: user})
}

// HandleLogin exchanges credentials for a token. Unknown usernames and wrong
// passwords are indistinguishable in the response.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req LoginRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	user, err := h.db.UserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.Unauthorized("Invalid credentials")
			return
		}
		rw.DatabaseError(err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logging.Ctx(r.Context()).Debug().Str("username", req.Username).Msg("password mismatch")
		rw.Unauthorized("Invalid credentials")
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
		rw.InternalError("Could not issue token")
		return
	}

	rw.Success(&AuthResponse{Token: token, User: user})
}

// HandleMe returns the authenticated account.
// GET /api/v1/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	claims := auth.ClaimsFromContext(r.Context())
	user, err := h.db.UserByID(r.Context(), claims.UserID)
	if err != nil {
		h.writeStoreError(rw, err, "Account not found")
		return
	}
	rw.Success(user)
}
