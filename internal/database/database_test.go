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

	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// setupTestDB creates an in-memory test database, closed on test cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	}
	db, err := New(cfg)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "$2a$10$testhashtesthashtesthashte",
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createTestGroup(t *testing.T, db *DB, slug string) *models.Group {
	t.Helper()

	group := &models.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "test group",
	}
	require.NoError(t, db.CreateGroup(context.Background(), group))
	return group
}

func createTestPost(t *testing.T, db *DB, authorID uuid.UUID, groupID *uuid.UUID, text string) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
	}
	require.NoError(t, db.CreatePost(context.Background(), post))
	return post
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "leo")

	got, err := db.UserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "leo", got.Username)
	assert.False(t, got.CreatedAt.IsZero())

	byID, err := db.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", byID.Username)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)

	createTestUser(t, db, "leo")

	dup := &models.User{Username: "leo", PasswordHash: "x"}
	err := db.CreateUser(context.Background(), dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserByUsernameNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.UserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	follower := createTestUser(t, db, "follower")

	post := createTestPost(t, db, author.ID, nil, "soon to be orphaned")
	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "nice"}
	require.NoError(t, db.CreateComment(ctx, comment))
	_, err := db.EnsureFollow(ctx, follower.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, db.DeleteUser(ctx, author.ID))

	// The author's posts, comments on those posts, and follow edges touching
	// the author are all gone.
	_, err = db.PostByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	following, err := db.IsFollowing(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Other accounts are untouched.
	_, err = db.UserByID(ctx, commenter.ID)
	assert.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPingAndClose(t *testing.T) {
	cfg := &config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 1}
	db, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.Close())
}

func TestManyUsersUniqueIDs(t *testing.T) {
	db := setupTestDB(t)

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 20; i++ {
		user := createTestUser(t, db, fmt.Sprintf("user%02d", i))
		assert.False(t, seen[user.ID], "duplicate id issued")
		seen[user.ID] = true
	}
}
