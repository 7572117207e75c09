// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package feed assembles ordered, paginated post feeds for the four read
// scopes: global index, group, author and following.
package feed

// Meta describes one window into an ordered feed.
type Meta struct {
	// Page is the effective 1-based page number after clamping.
	Page int `json:"page"`

	// PageSize is the window size used.
	PageSize int `json:"page_size"`

	// TotalCount is the number of items in the whole feed.
	TotalCount int `json:"total_count"`

	// TotalPages is the number of pages the feed spans. An empty feed has
	// one (empty) page.
	TotalPages int `json:"total_pages"`

	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Window computes the offset and limit of the requested page over a feed of
// totalCount items.
//
// Page numbers are 1-based. Out-of-range requests never fail: a page beyond
// the last clamps to the last page, and page <= 0 clamps to page 1. The
// returned Meta reflects the clamped page.
func Window(totalCount, pageSize, pageNumber int) (offset, limit int, meta Meta) {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	offset = (pageNumber - 1) * pageSize
	limit = pageSize

	meta = Meta{
		Page:        pageNumber,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNext:     pageNumber < totalPages,
		HasPrevious: pageNumber > 1,
	}
	return offset, limit, meta
}

// Paginate slices an already-ordered sequence into the requested page.
// Semantics match Window; the returned slice aliases the input.
func Paginate[T any](items []T, pageSize, pageNumber int) ([]T, Meta) {
	offset, limit, meta := Window(len(items), pageSize, pageNumber)

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	if offset > len(items) {
		offset = len(items)
	}
	return items[offset:end], meta
}
