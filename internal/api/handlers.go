// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/cache"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/feed"
	"github.com/inkwell-hq/inkwell/internal/validation"
	"github.com/inkwell-hq/inkwell/internal/websocket"
)

// maxRequestBody bounds JSON request payloads (posts carry text plus an
// optional image reference, never the blob itself).
const maxRequestBody = 1 << 20 // 1 MB

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	db        *database.DB
	feed      *feed.Service
	cache     cache.Cache
	jwt       *auth.JWTManager
	hub       *websocket.Hub
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(db *database.DB, feedSvc *feed.Service, c cache.Cache, jwt *auth.JWTManager, hub *websocket.Hub, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		feed:      feedSvc,
		cache:     c,
		jwt:       jwt,
		hub:       hub,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// decodeJSON reads and validates a request payload. A false return means a
// response was already written.
func (h *Handler) decodeJSON(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON payload")
		return false
	}

	if err := validation.ValidateStruct(dst); err != nil {
		var reqErr *validation.RequestError
		if errors.As(err, &reqErr) {
			rw.ValidationError("Validation failed", reqErr.Fields())
		} else {
			rw.BadRequest(err.Error())
		}
		return false
	}
	return true
}

// pageParams parses ?page and ?page_size. Malformed or out-of-range values
// fall back to defaults; the paginator clamps the page number itself.
func (h *Handler) pageParams(r *http.Request) (page, pageSize int) {
	page = 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	pageSize = h.cfg.Feed.PageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			pageSize = n
		}
	}
	if pageSize > h.cfg.Feed.MaxPageSize {
		pageSize = h.cfg.Feed.MaxPageSize
	}
	return page, pageSize
}

// writeStoreError maps store sentinels onto the error taxonomy. Unknown
// errors become 500s with the detail kept out of the response body.
func (h *Handler) writeStoreError(rw *ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(notFoundMsg)
	case errors.Is(err, database.ErrDuplicate):
		rw.Conflict("Resource already exists")
	default:
		rw.DatabaseError(err)
	}
}

// feedCacheKey builds the cache key for one window of a feed scope.
func feedCacheKey(scope string, page, pageSize int) string {
	return fmt.Sprintf("feed:%s:p%d:s%d", scope, page, pageSize)
}

// cachedFeed returns a previously rendered feed page, if present. Hit and
// miss counters are recorded by the cache backend itself.
func (h *Handler) cachedFeed(key string) (*feed.Page, bool) {
	data, ok := h.cache.Get(key)
	if !ok {
		return nil, false
	}

	var page feed.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	return &page, true
}

// storeFeed caches one rendered feed page.
func (h *Handler) storeFeed(key string, page *feed.Page) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	h.cache.Set(key, data)
}

// invalidateFeeds drops every cached feed page. Any write to posts can move
// entries across page boundaries in any scope, so invalidation is wholesale
// rather than per-key.
func (h *Handler) invalidateFeeds() {
	h.cache.Clear()
}
