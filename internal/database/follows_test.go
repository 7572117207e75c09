// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFollowIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")

	first, err := db.EnsureFollow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Following again returns the same edge, never a second row.
	second, err := db.EnsureFollow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := db.FollowerCount(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnsureFollowSelf(t *testing.T) {
	db := setupTestDB(t)

	user := createTestUser(t, db, "narcissus")

	_, err := db.EnsureFollow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	count, err := db.FollowerCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIsFollowing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")

	following, err := db.IsFollowing(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = db.EnsureFollow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)

	following, err = db.IsFollowing(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	reverse, err := db.IsFollowing(ctx, author.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestDeleteFollow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")

	_, err := db.EnsureFollow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, db.DeleteFollow(ctx, viewer.ID, author.ID))

	following, err := db.IsFollowing(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing someone you do not follow is a not-found error.
	err = db.DeleteFollow(ctx, viewer.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
