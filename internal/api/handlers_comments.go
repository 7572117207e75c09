// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// CommentRequest is the payload for adding a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=3000"`
}

// HandleListComments returns a post's comment thread.
// GET /api/v1/posts/{postID}/comments
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := postIDParam(rw, r)
	if !ok {
		return
	}

	// Distinguish "post has no comments" from "no such post".
	if _, err := h.db.PostByID(r.Context(), id); err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}

	comments, err := h.db.CommentsForPost(r.Context(), id)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(comments)
}

// HandleCreateComment adds a comment to a post. Commenting on a missing post
// is a 404, never a dangling comment.
// POST /api/v1/posts/{postID}/comments
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	id, ok := postIDParam(rw, r)
	if !ok {
		return
	}

	var req CommentRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}

	comment := &models.Comment{
		PostID:   id,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     req.Text,
	}
	if err := h.db.CreateComment(r.Context(), comment); err != nil {
		h.writeStoreError(rw, err, "Post not found")
		return
	}

	h.hub.BroadcastNewComment(comment)
	rw.Created(comment)
}
