// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		pageSize   int
		pageNumber int
		wantOffset int
		wantLimit  int
		wantMeta   Meta
	}{
		{
			name:       "first page of thirteen items",
			total:      13,
			pageSize:   10,
			pageNumber: 1,
			wantOffset: 0,
			wantLimit:  10,
			wantMeta:   Meta{Page: 1, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: true, HasPrevious: false},
		},
		{
			name:       "second page holds the remainder",
			total:      13,
			pageSize:   10,
			pageNumber: 2,
			wantOffset: 10,
			wantLimit:  10,
			wantMeta:   Meta{Page: 2, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: false, HasPrevious: true},
		},
		{
			name:       "page beyond the end clamps to last",
			total:      13,
			pageSize:   10,
			pageNumber: 99,
			wantOffset: 10,
			wantLimit:  10,
			wantMeta:   Meta{Page: 2, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: false, HasPrevious: true},
		},
		{
			name:       "zero page clamps to first",
			total:      13,
			pageSize:   10,
			pageNumber: 0,
			wantOffset: 0,
			wantLimit:  10,
			wantMeta:   Meta{Page: 1, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: true, HasPrevious: false},
		},
		{
			name:       "negative page clamps to first",
			total:      13,
			pageSize:   10,
			pageNumber: -5,
			wantOffset: 0,
			wantLimit:  10,
			wantMeta:   Meta{Page: 1, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: true, HasPrevious: false},
		},
		{
			name:       "empty feed yields one empty page",
			total:      0,
			pageSize:   10,
			pageNumber: 1,
			wantOffset: 0,
			wantLimit:  10,
			wantMeta:   Meta{Page: 1, PageSize: 10, TotalCount: 0, TotalPages: 1, HasNext: false, HasPrevious: false},
		},
		{
			name:       "exact multiple has no partial page",
			total:      20,
			pageSize:   10,
			pageNumber: 2,
			wantOffset: 10,
			wantLimit:  10,
			wantMeta:   Meta{Page: 2, PageSize: 10, TotalCount: 20, TotalPages: 2, HasNext: false, HasPrevious: true},
		},
		{
			name:       "single item single page",
			total:      1,
			pageSize:   10,
			pageNumber: 1,
			wantOffset: 0,
			wantLimit:  10,
			wantMeta:   Meta{Page: 1, PageSize: 10, TotalCount: 1, TotalPages: 1, HasNext: false, HasPrevious: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, meta := Window(tt.total, tt.pageSize, tt.pageNumber)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	first, meta := Paginate(items, 10, 1)
	assert.Len(t, first, 10)
	assert.Equal(t, 0, first[0])
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	second, meta := Paginate(items, 10, 2)
	assert.Len(t, second, 3)
	assert.Equal(t, 10, second[0])
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	// Beyond-the-end and underflow both clamp instead of failing.
	clamped, meta := Paginate(items, 10, 50)
	assert.Len(t, clamped, 3)
	assert.Equal(t, 2, meta.Page)

	clamped, meta = Paginate(items, 10, -1)
	assert.Len(t, clamped, 10)
	assert.Equal(t, 1, meta.Page)
}

func TestPaginateEmpty(t *testing.T) {
	page, meta := Paginate([]string{}, 10, 3)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 1, meta.TotalPages)
}
