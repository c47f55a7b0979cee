package post

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// FeedCacheKey is the Redis key holding the serialized feed. The worker
// deletes it whenever a post event arrives.
const FeedCacheKey = "posts:feed"

const feedCacheTTL = 30 * time.Second

type ListPostsUseCase struct {
	postRepo post.Repository
	cache    *redis.Client
	logger   logger.Logger
}

func NewListPostsUseCase(pRepo post.Repository, cache *redis.Client, log logger.Logger) *ListPostsUseCase {
	return &ListPostsUseCase{
		postRepo: pRepo,
		cache:    cache,
		logger:   log,
	}
}

// Execute returns every post, newest first. The result is cached briefly in
// Redis; a stale read window of feedCacheTTL is acceptable for the feed.
func (uc *ListPostsUseCase) Execute(ctx context.Context) ([]*post.Post, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, FeedCacheKey).Bytes()
		if err == nil {
			var posts []*post.Post
			if unmarshalErr := json.Unmarshal(cached, &posts); unmarshalErr == nil {
				return posts, nil
			} else {
				uc.logger.Warn("Discarding unreadable feed cache entry", zap.Error(unmarshalErr))
			}
		}
	}

	posts, err := uc.postRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list posts", err)
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(posts); err == nil {
			if err := uc.cache.Set(ctx, FeedCacheKey, payload, feedCacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to cache posts feed", zap.Error(err))
			}
		}
	}

	return posts, nil
}
