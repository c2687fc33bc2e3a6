package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"qna-backend/internal/domains/tag"
	"qna-backend/internal/shared/authz"
	"qna-backend/pkg/cache"
	"qna-backend/pkg/logger"
)

const (
	tagListCacheKey    = "tags:all"
	tagPopularCacheKey = "tags:popular"
	tagCacheTTL        = 5 * time.Minute
)

// tagService enforces admin-only mutation and keeps a short-lived cache of
// the tag directory. Tag data is admin-managed and safe to cache; derived
// vote state never goes through here.
type tagService struct {
	repo  tag.Repository
	cache cache.Cache
}

func NewTagService(repo tag.Repository, cache cache.Cache) tag.Service {
	return &tagService{
		repo:  repo,
		cache: cache,
	}
}

func (s *tagService) Create(ctx context.Context, actor authz.Actor, req tag.CreateTagRequest) (*tag.Tag, error) {
	if err := authz.CanManageTags(actor); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &tag.Tag{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != "" {
		t.Description = &req.Description
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return t, nil
}

func (s *tagService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req tag.UpdateTagRequest) (*tag.Tag, error) {
	if err := authz.CanManageTags(actor); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Description != "" {
		t.Description = &req.Description
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := authz.CanManageTags(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *tagService) List(ctx context.Context) ([]tag.Tag, error) {
	var cached []tag.Tag
	if found, err := s.cache.Get(ctx, tagListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, tagListCacheKey, tags, tagCacheTTL); err != nil {
		logger.Error("failed to cache tag list", err)
	}
	return tags, nil
}

func (s *tagService) Popular(ctx context.Context, limit int) ([]tag.PopularTag, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s:%d", tagPopularCacheKey, limit)
	var cached []tag.PopularTag
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	tags, err := s.repo.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, tags, tagCacheTTL); err != nil {
		logger.Error("failed to cache popular tags", err)
	}
	return tags, nil
}

func (s *tagService) ValidateIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return tag.ErrNoTags
	}

	// Dedupe defensively; clients may repeat ids.
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	count, err := s.repo.CountExisting(ctx, unique)
	if err != nil {
		return fmt.Errorf("validate tag ids: %w", err)
	}
	if count != len(unique) {
		return tag.ErrInvalidTag
	}
	return nil
}

func (s *tagService) invalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, tagListCacheKey); err != nil {
		logger.Error("failed to invalidate tag list cache", err)
	}
	if err := s.cache.DeletePattern(ctx, tagPopularCacheKey+":*"); err != nil {
		logger.Error("failed to invalidate popular tag cache", err)
	}
}
