package service

import (
	"errors"
	"testing"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func useMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.UseClient(client, "blogicum_test")
	t.Cleanup(func() {
		cache.UseClient(nil, "blogicum")
		_ = client.Close()
	})
	return mr
}

func TestGetVisibleBySlugCacheIsCaseSensitive(t *testing.T) {
	mr := useMiniRedis(t)
	db := setupServiceDB(t)
	categories := NewCategoryService(
		repository.NewCategoryRepository(db),
		repository.NewPostRepository(db),
		config.BlogConfig{PaginateBy: 10, CategoryCacheTTLSeconds: 60},
	)

	if _, err := categories.Create(CategoryInput{Title: "Путешествия", Slug: "travel"}); err != nil {
		t.Fatalf("create travel failed: %v", err)
	}
	hidden := false
	if _, err := categories.Create(CategoryInput{Title: "Скрытая", Slug: "Travel", IsPublished: &hidden}); err != nil {
		t.Fatalf("create Travel failed: %v", err)
	}

	category, err := categories.GetVisibleBySlug("travel")
	if err != nil || category.Slug != "travel" {
		t.Fatalf("published travel want visible, got %+v err=%v", category, err)
	}
	if !mr.Exists("blogicum_test:category:slug:travel") {
		t.Fatalf("travel snapshot should be cached")
	}

	// 命中缓存后仍需按原样区分大小写
	if _, err := categories.GetVisibleBySlug("Travel"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unpublished Travel want ErrNotFound, got %v", err)
	}
	if _, err := categories.GetVisibleBySlug("TRAVEL"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing TRAVEL want ErrNotFound, got %v", err)
	}
	if _, err := categories.GetVisibleBySlug("Travel"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cached unpublished Travel want ErrNotFound, got %v", err)
	}
	if category, err := categories.GetVisibleBySlug("travel"); err != nil || !category.IsPublished {
		t.Fatalf("cached travel want visible, got %+v err=%v", category, err)
	}
}
