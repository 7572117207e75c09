// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/models"
)

// PostFilter selects the scope of a feed query. At most one selector is set;
// the zero value selects all posts (global index).
type PostFilter struct {
	// GroupID limits the feed to posts of one group. Ungrouped posts never
	// match a group filter.
	GroupID *uuid.UUID

	// AuthorID limits the feed to posts of one author.
	AuthorID *uuid.UUID

	// FollowedBy limits the feed to posts whose author is followed by this
	// user.
	FollowedBy *uuid.UUID
}

// Store is the persistence surface the feed service reads from. All queries
// return posts ordered pub_date descending, id descending on ties.
type Store interface {
	GroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CountPosts(ctx context.Context, filter PostFilter) (int, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
}

// Page is one window of a feed plus its pagination metadata.
type Page struct {
	Posts []models.Post `json:"posts"`
	Meta  Meta          `json:"meta"`
}

// Service produces ordered, paginated post feeds. All operations are pure
// reads over the post and follow relations.
type Service struct {
	store    Store
	pageSize int
}

// NewService creates a feed service with the given default page size.
func NewService(store Store, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Service{store: store, pageSize: pageSize}
}

// PageSize returns the default page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// PostsForIndex returns the global feed: all posts, newest first.
func (s *Service) PostsForIndex(ctx context.Context, pageNumber, pageSize int) (*Page, error) {
	return s.query(ctx, PostFilter{}, pageNumber, pageSize)
}

// PostsForGroup returns the feed of one group, newest first. Returns the
// store's not-found error when no group has the slug.
func (s *Service) PostsForGroup(ctx context.Context, slug string, pageNumber, pageSize int) (*models.Group, *Page, error) {
	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve group %q: %w", slug, err)
	}

	page, err := s.query(ctx, PostFilter{GroupID: &group.ID}, pageNumber, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// PostsForAuthor returns the feed of one author, newest first. Returns the
// store's not-found error when no user has the username.
func (s *Service) PostsForAuthor(ctx context.Context, username string, pageNumber, pageSize int) (*models.User, *Page, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve author %q: %w", username, err)
	}

	page, err := s.query(ctx, PostFilter{AuthorID: &author.ID}, pageNumber, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return author, page, nil
}

// PostsForFollowing returns posts authored by anyone the viewer follows,
// newest first. A viewer who follows nobody gets an empty page. The caller
// must have authenticated the viewer already.
func (s *Service) PostsForFollowing(ctx context.Context, viewerID uuid.UUID, pageNumber, pageSize int) (*Page, error) {
	return s.query(ctx, PostFilter{FollowedBy: &viewerID}, pageNumber, pageSize)
}

// IsFollowing reports whether a follow edge (viewer -> author) exists.
// Backed by the unique (user, author) index, so this is a point lookup.
func (s *Service) IsFollowing(ctx context.Context, viewerID, authorID uuid.UUID) (bool, error) {
	return s.store.IsFollowing(ctx, viewerID, authorID)
}

// query counts the scoped feed, clamps the window and fetches one page.
func (s *Service) query(ctx context.Context, filter PostFilter, pageNumber, pageSize int) (*Page, error) {
	if pageSize < 1 {
		pageSize = s.pageSize
	}

	total, err := s.store.CountPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	offset, limit, meta := Window(total, pageSize, pageNumber)

	posts, err := s.store.ListPosts(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return &Page{Posts: posts, Meta: meta}, nil
}
