package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBlogDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate blog models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s failed: %v", username, err)
	}
	return user
}

func createCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: slug, Slug: slug, IsPublished: published}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category %s failed: %v", slug, err)
	}
	return category
}

type postSeed struct {
	title      string
	authorID   uint
	categoryID *uint
	published  bool
	pubDate    time.Time
}

func createPost(t *testing.T, db *gorm.DB, seed postSeed) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       seed.title,
		Text:        seed.title + " text",
		AuthorID:    seed.authorID,
		CategoryID:  seed.categoryID,
		IsPublished: seed.published,
		PubDate:     seed.pubDate.UTC(),
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %s failed: %v", seed.title, err)
	}
	return post
}

func postTitles(posts []models.Post) []string {
	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		titles = append(titles, post.Title)
	}
	return titles
}
