//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	tables := []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(tables...)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(tables...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresVisibilityAndSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	author := &models.User{Username: "pg-author", PasswordHash: "x"}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	hidden := &models.Category{Title: "Hidden", Slug: "pg-hidden", IsPublished: false}
	if err := db.Create(hidden).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	posts := []*models.Post{
		{Title: "Release Notes", Text: "body", AuthorID: author.ID, IsPublished: true, PubDate: now.Add(-time.Hour)},
		{Title: "Hidden Notes", Text: "body", AuthorID: author.ID, CategoryID: &hidden.ID, IsPublished: true, PubDate: now.Add(-time.Hour)},
	}
	for _, post := range posts {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	rows, total, err := repo.List(PostListFilter{Search: "release", Visibility: &PostVisibility{Now: now}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Title != "Release Notes" {
		t.Fatalf("ILIKE search with visibility want 1 row got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(PostListFilter{Visibility: &PostVisibility{ViewerID: author.ID, Now: now}})
	if err != nil {
		t.Fatalf("list as author failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("author should see both posts, got %d", total)
	}
}

func TestPostgresRowLockedRecount(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPostRepository(db)
	comments := NewCommentRepository(db)

	author := &models.User{Username: "pg-locker", PasswordHash: "x"}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	post := &models.Post{Title: "lock", Text: "body", AuthorID: author.ID, IsPublished: true, PubDate: time.Now()}
	if err := repo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if err := comments.Create(&models.Comment{Text: "c", PostID: post.ID, AuthorID: author.ID}); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	err := repo.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).GetByIDForUpdate(post.ID)
		if err != nil || locked == nil {
			t.Fatalf("lock post failed: %v", err)
		}
		count, err := comments.WithTx(tx).CountByPost(post.ID)
		if err != nil {
			return err
		}
		return repo.WithTx(tx).SetCommentCount(post.ID, count)
	})
	if err != nil {
		t.Fatalf("recount transaction failed: %v", err)
	}
	stored, _ := repo.GetByID(post.ID)
	if stored == nil || stored.CommentCount != 1 {
		t.Fatalf("comment_count want 1 got %+v", stored)
	}
}
