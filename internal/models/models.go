// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package models defines the core entities of the platform: users, groups,
// posts, comments and follow edges.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered author. Identity is owned by the auth layer; the
// store persists the minimum needed to run standalone.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Group is a topical collection of posts with an independent lifecycle.
// Deleting a group detaches its posts (group reference nulled), it never
// deletes them.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
}

// Post is an authored entry. PubDate is set once at creation and is
// immutable afterwards. Group is optional; a nil GroupID means "ungrouped",
// which is distinct from membership in any real group.
type Post struct {
	ID       uuid.UUID  `json:"id"`
	Text     string     `json:"text"`
	PubDate  time.Time  `json:"pub_date"`
	AuthorID uuid.UUID  `json:"author_id"`
	Author   string     `json:"author"`
	GroupID  *uuid.UUID `json:"group_id,omitempty"`
	Group    string     `json:"group,omitempty"`
	Image    string     `json:"image,omitempty"` // Optional blob reference
}

// Comment is a reply to a post. Created is set once at creation. Comments
// are deleted together with their post or author.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// Follow is a directed edge: UserID receives AuthorID's posts in their
// personalized feed. At most one edge exists per (user, author) pair;
// (A follows B) does not imply (B follows A).
type Follow struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

// Profile is the presentation view of an author: the user plus follow
// counts and the viewer's follow state.
type Profile struct {
	User      User `json:"user"`
	PostCount int  `json:"post_count"`
	Followers int  `json:"followers"`
	Following bool `json:"following"`
}
