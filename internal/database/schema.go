// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements creates all tables, sequences and indexes. Statements are
// idempotent so startup can run them unconditionally.
//
// The seq columns on posts and comments are insertion-order surrogates used
// as the tie-break for equal timestamps, since random UUIDs carry no order.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS posts_seq`,
	`CREATE SEQUENCE IF NOT EXISTS comments_seq`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS groups (
		id UUID PRIMARY KEY,
		title VARCHAR NOT NULL,
		slug VARCHAR NOT NULL UNIQUE,
		description VARCHAR NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		text VARCHAR NOT NULL,
		pub_date TIMESTAMP NOT NULL,
		author_id UUID NOT NULL,
		group_id UUID,
		image VARCHAR NOT NULL DEFAULT '',
		seq BIGINT NOT NULL DEFAULT nextval('posts_seq')
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		post_id UUID NOT NULL,
		author_id UUID NOT NULL,
		text VARCHAR NOT NULL,
		created TIMESTAMP NOT NULL,
		seq BIGINT NOT NULL DEFAULT nextval('comments_seq')
	)`,

	// Directed follow edge. The unique constraint makes the follow-state
	// probe a point lookup and the self-follow check backs up the service
	// layer guard.
	`CREATE TABLE IF NOT EXISTS follows (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		author_id UUID NOT NULL,
		UNIQUE (user_id, author_id),
		CHECK (user_id <> author_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_posts_pub_date ON posts (pub_date DESC, seq DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts (author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_group ON posts (group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments (post_id, created DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_user ON follows (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_author ON follows (author_id)`,
}

// createSchema applies the schema statements in order.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
