// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/feed"
	"github.com/inkwell-hq/inkwell/internal/models"
)

func TestPostLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	group := createTestGroup(t, db, "nature")

	post := createTestPost(t, db, author.ID, &group.ID, "first light")
	require.NotEqual(t, uuid.Nil, post.ID)
	require.False(t, post.PubDate.IsZero())

	got, err := db.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first light", got.Text)
	assert.Equal(t, "leo", got.Author)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, group.ID, *got.GroupID)
	assert.Equal(t, group.Title, got.Group)

	// Edit changes text and group but never pub_date.
	got.Text = "second thoughts"
	got.GroupID = nil
	require.NoError(t, db.UpdatePost(ctx, got))

	edited, err := db.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "second thoughts", edited.Text)
	assert.Nil(t, edited.GroupID)
	assert.True(t, edited.PubDate.Equal(got.PubDate), "pub_date must be immutable")

	require.NoError(t, db.DeletePost(ctx, post.ID))
	_, err = db.PostByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostByIDNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.PostByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	for i := 0; i < 5; i++ {
		createTestPost(t, db, author.ID, nil, fmt.Sprintf("post %d", i))
	}

	posts, err := db.ListPosts(ctx, feed.PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 5)

	// Most recently created first; ties on pub_date break by insertion order.
	for i, p := range posts {
		assert.Equal(t, fmt.Sprintf("post %d", 4-i), p.Text)
	}
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].PubDate.After(posts[i-1].PubDate), "ordering violated at index %d", i)
	}
}

func TestListPostsGroupFilterExcludesUngrouped(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	group := createTestGroup(t, db, "nature")
	other := createTestGroup(t, db, "city")

	createTestPost(t, db, author.ID, &group.ID, "in group")
	createTestPost(t, db, author.ID, &other.ID, "in other group")
	createTestPost(t, db, author.ID, nil, "ungrouped")

	posts, err := db.ListPosts(ctx, feed.PostFilter{GroupID: &group.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "in group", posts[0].Text)

	count, err := db.CountPosts(ctx, feed.PostFilter{GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListPostsAuthorFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	leo := createTestUser(t, db, "leo")
	mia := createTestUser(t, db, "mia")

	createTestPost(t, db, leo.ID, nil, "by leo")
	createTestPost(t, db, mia.ID, nil, "by mia 1")
	createTestPost(t, db, mia.ID, nil, "by mia 2")

	posts, err := db.ListPosts(ctx, feed.PostFilter{AuthorID: &mia.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, "mia", p.Author)
	}
}

func TestListPostsFollowedByFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")

	createTestPost(t, db, followed.ID, nil, "from followed")
	createTestPost(t, db, stranger.ID, nil, "from stranger")

	_, err := db.EnsureFollow(ctx, viewer.ID, followed.ID)
	require.NoError(t, err)

	posts, err := db.ListPosts(ctx, feed.PostFilter{FollowedBy: &viewer.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from followed", posts[0].Text)

	// A viewer following nobody sees an empty feed, not an error.
	posts, err = db.ListPosts(ctx, feed.PostFilter{FollowedBy: &stranger.ID}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListPostsWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	for i := 0; i < 13; i++ {
		createTestPost(t, db, author.ID, nil, fmt.Sprintf("post %02d", i))
	}

	first, err := db.ListPosts(ctx, feed.PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, first, 10)

	second, err := db.ListPosts(ctx, feed.PostFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Len(t, second, 3)

	// Windows are disjoint and contiguous.
	assert.Equal(t, "post 03", first[len(first)-1].Text)
	assert.Equal(t, "post 02", second[0].Text)
}

func TestUpdatePostNotFound(t *testing.T) {
	db := setupTestDB(t)

	author := createTestUser(t, db, "leo")
	post := createTestPost(t, db, author.ID, nil, "text")
	require.NoError(t, db.DeletePost(context.Background(), post.ID))

	post.Text = "edited"
	err := db.UpdatePost(context.Background(), post)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostRemovesComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	post := createTestPost(t, db, author.ID, nil, "text")

	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "a comment"}
	require.NoError(t, db.CreateComment(ctx, comment))

	require.NoError(t, db.DeletePost(ctx, post.ID))

	comments, err := db.CommentsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
