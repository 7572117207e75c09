// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/feed"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// HandleProfile returns a user's public profile: the account, post count,
// follower count, and whether the viewer follows them. Following is always
// false for anonymous viewers and for the profile owner.
// GET /api/v1/profiles/{username}
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	username := chi.URLParam(r, "username")

	user, err := h.db.UserByUsername(r.Context(), username)
	if err != nil {
		h.writeStoreError(rw, err, "User not found")
		return
	}

	postCount, err := h.db.CountPosts(r.Context(), feed.PostFilter{AuthorID: &user.ID})
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	followers, err := h.db.FollowerCount(r.Context(), user.ID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	following := false
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil && claims.UserID != user.ID {
		following, err = h.feed.IsFollowing(r.Context(), claims.UserID, user.ID)
		if err != nil {
			rw.DatabaseError(err)
			return
		}
	}

	rw.Success(&models.Profile{
		User:      *user,
		PostCount: postCount,
		Followers: followers,
		Following: following,
	})
}

// HandleProfileFeed returns one author's posts, newest first.
// GET /api/v1/profiles/{username}/posts
func (h *Handler) HandleProfileFeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	username := chi.URLParam(r, "username")
	page, pageSize := h.pageParams(r)

	_, result, err := h.feed.PostsForAuthor(r.Context(), username, page, pageSize)
	if err != nil {
		h.writeStoreError(rw, err, "User not found")
		return
	}

	rw.SuccessWithPagination(result.Posts, paginationFromMeta(result.Meta))
}

// HandleFollow subscribes the viewer to an author. Following twice is a
// no-op, and following yourself silently does nothing; both leave at most
// one follow edge.
// POST /api/v1/profiles/{username}/follow
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())
	username := chi.URLParam(r, "username")

	author, err := h.db.UserByUsername(r.Context(), username)
	if err != nil {
		h.writeStoreError(rw, err, "User not found")
		return
	}

	if author.ID == claims.UserID {
		rw.Success(map[string]bool{"following": false})
		return
	}

	if _, err := h.db.EnsureFollow(r.Context(), claims.UserID, author.ID); err != nil {
		if errors.Is(err, database.ErrSelfFollow) {
			rw.Success(map[string]bool{"following": false})
			return
		}
		rw.DatabaseError(err)
		return
	}

	rw.Success(map[string]bool{"following": true})
}

// HandleUnfollow removes the viewer's subscription to an author. Unfollowing
// someone you do not follow is a 404.
// DELETE /api/v1/profiles/{username}/follow
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())
	username := chi.URLParam(r, "username")

	author, err := h.db.UserByUsername(r.Context(), username)
	if err != nil {
		h.writeStoreError(rw, err, "User not found")
		return
	}

	if err := h.db.DeleteFollow(r.Context(), claims.UserID, author.ID); err != nil {
		h.writeStoreError(rw, err, "Follow not found")
		return
	}

	rw.NoContent()
}
