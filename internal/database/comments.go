// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/metrics"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// CreateComment inserts a comment on an existing post. Created is assigned
// here, once. Returns ErrNotFound when the post does not exist.
func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "comments", start, err) }()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.Created = time.Now().UTC().Truncate(time.Microsecond)

	// No enforced foreign keys, so the existence probe is explicit.
	var exists bool
	err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = ?)`, comment.PostID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		err = fmt.Errorf("post: %w", ErrNotFound)
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author_id, text, created) VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.PostID, comment.AuthorID, comment.Text, comment.Created)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// CommentsForPost returns all comments on a post, newest first with
// insertion-order tie-break.
func (db *DB) CommentsForPost(ctx context.Context, postID uuid.UUID) (comments []models.Comment, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "comments", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ?
		 ORDER BY c.created DESC, c.seq DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer closeQuietly(rows)

	comments = []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err = rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}
