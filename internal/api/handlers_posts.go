// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// PostRequest is the payload for creating or editing a post.
type PostRequest struct {
	Text    string     `json:"text" validate:"required,max=10000"`
	GroupID *uuid.UUID `json:"group_id,omitempty"`
	Image   string     `json:"image,omitempty" validate:"max=500"`
}

// PostDetail is a post together with its comment thread.
type PostDetail struct {
	Post     *models.Post     `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// postIDParam parses the {postID} URL parameter. A false return means a
// response was already written.
func postIDParam(rw *ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		rw.BadRequest("Invalid post ID")
		return uuid.Nil, false
	}
	return id, true
}

// HandleIndexFeed returns the global feed: every post, newest first. Pages
// are served from cache when possible; any post write clears the cache.
// GET /api/v1/posts
func (h *Handler) HandleIndexFeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	page, pageSize := h.pageParams(r)

	key := feedCacheKey("index", page, pageSize)
	if cached, ok := h.cachedFeed(key); ok {
		rw.SuccessWithPagination(cached.Posts, paginationFromMeta(cached.Meta))
		return
	}

	result, err := h.feed.PostsForIndex(r.Context(), page, pageSize)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	h.storeFeed(key, result)
	rw.SuccessWithPagination(result.Posts, paginationFromMeta(result.Meta))
}

// HandleFollowingFeed returns posts by authors the viewer follows, newest
// first. Following nobody yields an empty first page, not an error.
// GET /api/v1/feed
func (h *Handler) HandleFollowingFeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())
	page, pageSize := h.pageParams(r)

	result, err := h.feed.PostsForFollowing(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.SuccessWithPagination(result.Posts, paginationFromMeta(result.Meta))
}

// HandleGetPost returns one post with its comments, newest comment first.
// GET /api/v1/posts/{postID}
func (h *Handler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := postIDParam(rw, r)
	if !ok {
		return
	}

	post, err := h.db.PostByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}

	comments, err := h.db.CommentsForPost(r.Context(), id)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.Success(&PostDetail{Post: post, Comments: comments})
}

// HandleCreatePost creates a post authored by the viewer. The publication
// date is assigned server-side and is immutable afterwards.
// POST /api/v1/posts
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	var req PostRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		GroupID:  req.GroupID,
		Image:    req.Image,
	}
	if err := h.db.CreatePost(r.Context(), post); err != nil {
		rw.DatabaseError(err)
		return
	}

	h.invalidateFeeds()
	h.hub.BroadcastNewPost(post)
	logging.Ctx(r.Context()).Info().Str("post_id", post.ID.String()).Str("author", claims.Username).Msg("post created")
	rw.Created(post)
}

// HandleUpdatePost edits a post's text, group or image. Only the author may
// edit; pub_date keeps its original value so the post does not move in any
// feed.
// PUT /api/v1/posts/{postID}
func (h *Handler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	id, ok := postIDParam(rw, r)
	if !ok {
		return
	}

	post, err := h.db.PostByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}
	if post.AuthorID != claims.UserID {
		rw.Forbidden("Only the author may edit this post")
		return
	}

	var req PostRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	post.Text = req.Text
	post.GroupID = req.GroupID
	post.Image = req.Image
	if err := h.db.UpdatePost(r.Context(), post); err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}

	h.invalidateFeeds()
	rw.Success(post)
}

// HandleDeletePost removes a post and its comments. Only the author may
// delete.
// DELETE /api/v1/posts/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	id, ok := postIDParam(rw, r)
	if !ok {
		return
	}

	post, err := h.db.PostByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}
	if post.AuthorID != claims.UserID {
		rw.Forbidden("Only the author may delete this post")
		return
	}

	if err := h.db.DeletePost(r.Context(), id); err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}

	h.invalidateFeeds()
	logging.Ctx(r.Context()).Info().Str("post_id", id.String()).Msg("post deleted")
	rw.NoContent()
}
