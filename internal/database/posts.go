// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/feed"
	"github.com/inkwell-hq/inkwell/internal/metrics"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// postColumns is the join used by every post read. Author username is always
// resolved; group title only when the post is grouped.
const postColumns = `
	p.id, p.text, p.pub_date, p.author_id, u.username,
	p.group_id, COALESCE(g.title, ''), p.image
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// postOrder is the feed order: newest first, insertion order breaking ties.
const postOrder = ` ORDER BY p.pub_date DESC, p.seq DESC`

// CreatePost inserts a new post. PubDate is assigned here, once, and is
// never updated afterwards.
func (db *DB) CreatePost(ctx context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "posts", start, err) }()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	// Truncated to the storage precision so the value written and the value
	// read back compare equal.
	post.PubDate = time.Now().UTC().Truncate(time.Microsecond)

	var groupID any
	if post.GroupID != nil {
		groupID = *post.GroupID
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO posts (id, text, pub_date, author_id, group_id, image)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		post.ID, post.Text, post.PubDate, post.AuthorID, groupID, post.Image)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// PostByID fetches one post. Returns ErrNotFound when absent.
func (db *DB) PostByID(ctx context.Context, id uuid.UUID) (p *models.Post, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "posts", start, err) }()

	row := db.conn.QueryRowContext(ctx, `SELECT`+postColumns+` WHERE p.id = ?`, id)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}
	return post, nil
}

// UpdatePost rewrites the mutable fields of a post: text, group and image.
// pub_date and author are immutable. Returns ErrNotFound when absent.
func (db *DB) UpdatePost(ctx context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "posts", start, err) }()

	var groupID any
	if post.GroupID != nil {
		groupID = *post.GroupID
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE posts SET text = ?, group_id = ?, image = ? WHERE id = ?`,
		post.Text, groupID, post.Image, post.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("post: %w", ErrNotFound)
		return err
	}
	return nil
}

// DeletePost removes a post and its comments.
func (db *DB) DeletePost(ctx context.Context, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "posts", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete post: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("cascade delete comments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("post: %w", ErrNotFound)
		return err
	}

	return tx.Commit()
}

// CountPosts returns the number of posts matching the filter.
func (db *DB) CountPosts(ctx context.Context, filter feed.PostFilter) (count int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", "posts", start, err) }()

	where, args := buildPostFilter(filter)
	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns one window of posts matching the filter, newest first
// with insertion-order tie-break.
func (db *DB) ListPosts(ctx context.Context, filter feed.PostFilter, limit, offset int) (posts []models.Post, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "posts", start, err) }()

	where, args := buildPostFilter(filter)
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT`+postColumns+where+postOrder+` LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer closeQuietly(rows)

	posts = []models.Post{}
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			err = fmt.Errorf("scan post: %w", scanErr)
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// buildPostFilter translates a feed filter into a WHERE clause. The
// following scope is the relational form of "posts whose author appears as
// the followed side of an edge owned by the viewer".
func buildPostFilter(filter feed.PostFilter) (string, []any) {
	switch {
	case filter.GroupID != nil:
		return ` WHERE p.group_id = ?`, []any{*filter.GroupID}
	case filter.AuthorID != nil:
		return ` WHERE p.author_id = ?`, []any{*filter.AuthorID}
	case filter.FollowedBy != nil:
		return ` WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id = ?)`,
			[]any{*filter.FollowedBy}
	default:
		return ``, nil
	}
}

// rowScanner lets scanPost work on both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post    models.Post
		groupID uuid.NullUUID
	)
	if err := row.Scan(&post.ID, &post.Text, &post.PubDate, &post.AuthorID,
		&post.Author, &groupID, &post.Group, &post.Image); err != nil {
		return nil, err
	}
	if groupID.Valid {
		post.GroupID = &groupID.UUID
	}
	return &post, nil
}
