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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/metrics"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// CreateUser inserts a new user. Returns ErrDuplicate when the username is
// taken.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "users", start, err) }()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByUsername fetches one user by username. Returns ErrNotFound when
// absent.
func (db *DB) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.userBy(ctx, `username = ?`, username)
}

// UserByID fetches one user by ID. Returns ErrNotFound when absent.
func (db *DB) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return db.userBy(ctx, `id = ?`, id)
}

func (db *DB) userBy(ctx context.Context, cond string, arg any) (u *models.User, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "users", start, err) }()

	var user models.User
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE `+cond, arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user and everything hanging off them: their posts
// (with those posts' comments), their comments on other posts, and every
// follow edge they participate in. Matches the author-delete cascade rules
// of the data model.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "users", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	statements := []struct {
		query string
		args  []any
	}{
		{`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)`, []any{id}},
		{`DELETE FROM comments WHERE author_id = ?`, []any{id}},
		{`DELETE FROM posts WHERE author_id = ?`, []any{id}},
		{`DELETE FROM follows WHERE user_id = ? OR author_id = ?`, []any{id, id}},
	}
	for _, s := range statements {
		if _, err = tx.ExecContext(ctx, s.query, s.args...); err != nil {
			return fmt.Errorf("cascade delete user: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("user: %w", ErrNotFound)
		return err
	}

	return tx.Commit()
}

// isConstraintViolation reports whether err is a uniqueness or check
// constraint failure. The DuckDB driver surfaces these as plain errors, so
// this matches on the engine's message.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") || strings.Contains(msg, "duplicate key")
}
