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

// CreateGroup inserts a new group. Returns ErrDuplicate when the slug is
// taken.
func (db *DB) CreateGroup(ctx context.Context, group *models.Group) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "groups", start, err) }()

	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO groups (id, title, slug, description) VALUES (?, ?, ?, ?)`,
		group.ID, group.Title, group.Slug, group.Description)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("group slug %q: %w", group.Slug, ErrDuplicate)
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GroupBySlug fetches one group by its unique slug. Returns ErrNotFound
// when absent.
func (db *DB) GroupBySlug(ctx context.Context, slug string) (g *models.Group, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "groups", start, err) }()

	var group models.Group
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, title, slug, description FROM groups WHERE slug = ?`, slug).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select group: %w", err)
	}
	return &group, nil
}

// ListGroups returns all groups ordered by title.
func (db *DB) ListGroups(ctx context.Context) (groups []models.Group, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "groups", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, slug, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer closeQuietly(rows)

	groups = []models.Group{}
	for rows.Next() {
		var g models.Group
		if err = rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group and detaches its posts by nulling their group
// reference. Posts survive group deletion; only the grouping is lost.
func (db *DB) DeleteGroup(ctx context.Context, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "groups", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete group: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE posts SET group_id = NULL WHERE group_id = ?`, id); err != nil {
		return fmt.Errorf("detach posts from group: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("group: %w", ErrNotFound)
		return err
	}

	return tx.Commit()
}
