package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingEnqueuer struct {
	mu      sync.Mutex
	postIDs []uint
	err     error
}

func (r *recordingEnqueuer) EnqueueCommentCountReconcile(postID uint, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postIDs = append(r.postIDs, postID)
	return r.err
}

type blogFixture struct {
	db         *gorm.DB
	postRepo   repository.PostRepository
	commentRpo repository.CommentRepository
	userRepo   repository.UserRepository
	enqueuer   *recordingEnqueuer
	counter    *CommentCountSynchronizer
	categories *CategoryService
	posts      *PostService
	comments   *CommentService
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newBlogFixture(t *testing.T) *blogFixture {
	t.Helper()
	db := setupServiceDB(t)
	blog := config.BlogConfig{PaginateBy: 10, MaxPageSize: 50}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	userRepo := repository.NewUserRepository(db)

	enqueuer := &recordingEnqueuer{}
	counter := NewCommentCountSynchronizer(postRepo, commentRepo, enqueuer, time.Minute)
	categories := NewCategoryService(categoryRepo, postRepo, blog)
	posts := NewPostService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo, categories, blog)
	posts.SetClock(func() time.Time { return fixedNow })
	comments := NewCommentService(postRepo, commentRepo, counter)
	comments.SetClock(func() time.Time { return fixedNow })

	return &blogFixture{
		db:         db,
		postRepo:   postRepo,
		commentRpo: commentRepo,
		userRepo:   userRepo,
		enqueuer:   enqueuer,
		counter:    counter,
		categories: categories,
		posts:      posts,
		comments:   comments,
	}
}

func (f *blogFixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash"}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *blogFixture) category(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: slug, Slug: slug, IsPublished: published}
	if err := f.db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func (f *blogFixture) post(t *testing.T, author *models.User, title string, mutate func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        title + " body",
		AuthorID:    author.ID,
		IsPublished: true,
		PubDate:     fixedNow.Add(-time.Hour),
	}
	if mutate != nil {
		mutate(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func (f *blogFixture) locationRepo() repository.LocationRepository {
	return repository.NewLocationRepository(f.db)
}

func titlesOf(posts []models.Post) []string {
	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		titles = append(titles, post.Title)
	}
	return titles
}
