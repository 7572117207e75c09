// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// GroupRequest is the payload for creating a group.
type GroupRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	Description string `json:"description" validate:"max=2000"`
}

// GroupFeed is a group together with one page of its posts.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	Posts []models.Post `json:"posts"`
}

// HandleListGroups returns all groups ordered by title.
// GET /api/v1/groups
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	groups, err := h.db.ListGroups(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	rw.Success(groups)
}

// HandleCreateGroup creates a group. Slugs are unique; a duplicate slug is a
// conflict, not an overwrite.
// POST /api/v1/groups
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req GroupRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.db.CreateGroup(r.Context(), group); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			rw.Conflict("Slug already in use")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Created(group)
}

// HandleGroupFeed returns one group and a page of its posts, newest first.
// Ungrouped posts never appear here.
// GET /api/v1/groups/{slug}/posts
func (h *Handler) HandleGroupFeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	slug := chi.URLParam(r, "slug")
	page, pageSize := h.pageParams(r)

	key := feedCacheKey("group:"+slug, page, pageSize)
	if cached, ok := h.cachedFeed(key); ok {
		// The group record itself still comes from the store; only the post
		// window is cached.
		group, err := h.db.GroupBySlug(r.Context(), slug)
		if err != nil {
			h.writeStoreError(rw, err, "Group not found")
			return
		}
		rw.SuccessWithPagination(&GroupFeed{Group: group, Posts: cached.Posts}, paginationFromMeta(cached.Meta))
		return
	}

	group, result, err := h.feed.PostsForGroup(r.Context(), slug, page, pageSize)
	if err != nil {
		h.writeStoreError(rw, err, "Group not found")
		return
	}

	h.storeFeed(key, result)
	rw.SuccessWithPagination(&GroupFeed{Group: group, Posts: result.Posts}, paginationFromMeta(result.Meta))
}
