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

	"github.com/inkwell-hq/inkwell/internal/metrics"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// EnsureFollow creates the follow edge (user -> author) if it does not
// exist yet. Idempotent: a duplicate attempt is absorbed by
// ON CONFLICT DO NOTHING and the existing edge is returned, so the row
// count for the pair never exceeds one.
//
// Self-follows are rejected with ErrSelfFollow; the HTTP layer normally
// short-circuits those before reaching the store.
func (db *DB) EnsureFollow(ctx context.Context, userID, authorID uuid.UUID) (f *models.Follow, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "follows", start, err) }()

	if userID == authorID {
		return nil, ErrSelfFollow
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO follows (id, user_id, author_id) VALUES (?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		uuid.New(), userID, authorID)
	if err != nil {
		return nil, fmt.Errorf("insert follow: %w", err)
	}

	var follow models.Follow
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, author_id FROM follows WHERE user_id = ? AND author_id = ?`,
		userID, authorID).
		Scan(&follow.ID, &follow.UserID, &follow.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("select follow: %w", err)
	}
	return &follow, nil
}

// DeleteFollow removes the follow edge (user -> author). Returns
// ErrNotFound when the edge does not exist.
func (db *DB) DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "follows", start, err) }()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("follow: %w", ErrNotFound)
		return err
	}
	return nil
}

// IsFollowing reports whether the edge (user -> author) exists. Point
// lookup on the unique (user_id, author_id) constraint, not a count.
func (db *DB) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (following bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "follows", start, err) }()

	var one int
	err = db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select follow: %w", err)
	}
	return true, nil
}

// FollowerCount returns how many users follow the given author.
func (db *DB) FollowerCount(ctx context.Context, authorID uuid.UUID) (count int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", "follows", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE author_id = ?`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return count, nil
}
