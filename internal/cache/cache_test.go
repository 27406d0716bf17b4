package cache

import (
	"context"
	"testing"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("get on disabled cache should miss, hit=%v err=%v", hit, err)
	}
	if _, hit, err := GetCategory(ctx, "travel"); hit || err != nil {
		t.Fatalf("category snapshot should miss when disabled")
	}
}

func TestKeyPrefix(t *testing.T) {
	redisPrefix = "blog"
	t.Cleanup(func() { redisPrefix = defaultPrefix })
	if got := Key("auth:user:1"); got != "blog:auth:user:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key("  "); got != "blog" {
		t.Fatalf("empty key should resolve to prefix, got %s", got)
	}
	if got := categoryKey(" Travel "); got != "category:slug:Travel" {
		t.Fatalf("unexpected category key: %s", got)
	}
	if categoryKey("travel") == categoryKey("TRAVEL") {
		t.Fatalf("category keys must be case sensitive")
	}
}

func TestCategorySnapshotRoundTrip(t *testing.T) {
	category := &models.Category{ID: 3, Title: "Travel", Slug: "travel", IsPublished: true}
	restored := BuildCategorySnapshot(category).Model()
	if restored.ID != 3 || restored.Slug != "travel" || !restored.IsPublished {
		t.Fatalf("unexpected restored category: %+v", restored)
	}
	if BuildCategorySnapshot(nil) != nil {
		t.Fatalf("nil category should give nil snapshot")
	}
}

func TestBuildUserAuthState(t *testing.T) {
	invalid := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{ID: 9, Username: "alice", TokenVersion: 2, TokenInvalidBefore: &invalid})
	if state.UserID != 9 || state.TokenVersion != 2 || state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected auth state: %+v", state)
	}
}
