// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/models"
)

func TestGroupBySlug(t *testing.T) {
	db := setupTestDB(t)

	group := createTestGroup(t, db, "nature")

	got, err := db.GroupBySlug(context.Background(), "nature")
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)
	assert.Equal(t, group.Title, got.Title)

	_, err = db.GroupBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGroupDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)

	createTestGroup(t, db, "nature")

	dup := &models.Group{Title: "Another", Slug: "nature"}
	err := db.CreateGroup(context.Background(), dup)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListGroupsOrderedByTitle(t *testing.T) {
	db := setupTestDB(t)

	createTestGroup(t, db, "zebra")
	createTestGroup(t, db, "apple")
	createTestGroup(t, db, "mango")

	groups, err := db.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Group apple", groups[0].Title)
	assert.Equal(t, "Group mango", groups[1].Title)
	assert.Equal(t, "Group zebra", groups[2].Title)
}

func TestDeleteGroupDetachesPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "leo")
	group := createTestGroup(t, db, "nature")
	post := createTestPost(t, db, author.ID, &group.ID, "grouped")

	require.NoError(t, db.DeleteGroup(ctx, group.ID))

	// The post survives, detached from the deleted group.
	got, err := db.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Empty(t, got.Group)
}

func TestDeleteGroupNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteGroup(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
