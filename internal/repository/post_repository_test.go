package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/blogicum/internal/models"
)

func TestPostListVisibilityForAnonymous(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	open := createCategory(t, db, "travel", true)
	hidden := createCategory(t, db, "drafts", false)
	now := time.Now().UTC()

	createPost(t, db, postSeed{title: "no-category", authorID: author.ID, published: true, pubDate: now.Add(-3 * time.Hour)})
	createPost(t, db, postSeed{title: "open-category", authorID: author.ID, categoryID: &open.ID, published: true, pubDate: now.Add(-time.Hour)})
	createPost(t, db, postSeed{title: "hidden-category", authorID: author.ID, categoryID: &hidden.ID, published: true, pubDate: now.Add(-time.Hour)})
	createPost(t, db, postSeed{title: "unpublished", authorID: author.ID, published: false, pubDate: now.Add(-time.Hour)})
	createPost(t, db, postSeed{title: "scheduled", authorID: author.ID, published: true, pubDate: now.Add(time.Hour)})

	posts, total, err := repo.List(PostListFilter{Visibility: &PostVisibility{Now: now}})
	if err != nil {
		t.Fatalf("list visible posts failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d (%v)", total, postTitles(posts))
	}
	got := strings.Join(postTitles(posts), ",")
	if got != "open-category,no-category" {
		t.Fatalf("unexpected order or content: %s", got)
	}
	if posts[0].Author == nil || posts[0].Author.Username != "author" {
		t.Fatalf("author should be preloaded")
	}
	if posts[0].Category == nil || posts[0].Category.Slug != "travel" {
		t.Fatalf("category should be preloaded")
	}
}

func TestPostListVisibilityIncludesViewerOwnPosts(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	now := time.Now().UTC()

	createPost(t, db, postSeed{title: "own-draft", authorID: author.ID, published: false, pubDate: now})
	createPost(t, db, postSeed{title: "foreign-draft", authorID: other.ID, published: false, pubDate: now})
	createPost(t, db, postSeed{title: "foreign-public", authorID: other.ID, published: true, pubDate: now.Add(-time.Minute)})

	posts, total, err := repo.List(PostListFilter{Visibility: &PostVisibility{ViewerID: author.ID, Now: now}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d (%v)", total, postTitles(posts))
	}
	for _, post := range posts {
		if post.Title == "foreign-draft" {
			t.Fatalf("foreign draft must stay hidden")
		}
	}
}

func TestPostListPaginationAndAuthorFilter(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	base := time.Now().UTC().Add(-24 * time.Hour)

	for i := 0; i < 12; i++ {
		createPost(t, db, postSeed{title: "p" + string(rune('a'+i)), authorID: author.ID, published: true, pubDate: base.Add(time.Duration(i) * time.Minute)})
	}
	createPost(t, db, postSeed{title: "other", authorID: other.ID, published: true, pubDate: base})

	posts, total, err := repo.List(PostListFilter{AuthorID: author.ID, Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 12 {
		t.Fatalf("total want 12 got %d", total)
	}
	if len(posts) != 2 {
		t.Fatalf("second page want 2 posts got %d", len(posts))
	}
	if posts[0].Title != "pb" || posts[1].Title != "pa" {
		t.Fatalf("second page should hold the oldest posts, got %v", postTitles(posts))
	}
}

func TestPostListSearch(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	now := time.Now().UTC()
	createPost(t, db, postSeed{title: "Mountains", authorID: author.ID, published: true, pubDate: now})
	createPost(t, db, postSeed{title: "Rivers", authorID: author.ID, published: true, pubDate: now})

	posts, total, err := repo.List(PostListFilter{Search: "mount"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || posts[0].Title != "Mountains" {
		t.Fatalf("unexpected search result: %v", postTitles(posts))
	}
}

func TestPostUpdateKeepsCommentCount(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	post := createPost(t, db, postSeed{title: "before", authorID: author.ID, published: true, pubDate: time.Now()})
	if err := repo.SetCommentCount(post.ID, 4); err != nil {
		t.Fatalf("set comment count failed: %v", err)
	}

	post.Title = "after"
	post.CommentCount = 0
	post.IsPublished = false
	if err := repo.Update(post); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.GetByID(post.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Title != "after" || stored.IsPublished {
		t.Fatalf("editable fields not saved: %+v", stored)
	}
	if stored.CommentCount != 4 {
		t.Fatalf("comment_count must not be written by update, got %d", stored.CommentCount)
	}
}

func TestPostDeleteWithComments(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	post := createPost(t, db, postSeed{title: "doomed", authorID: author.ID, published: true, pubDate: time.Now()})
	keep := createPost(t, db, postSeed{title: "keep", authorID: author.ID, published: true, pubDate: time.Now()})
	for _, postID := range []uint{post.ID, post.ID, keep.ID} {
		if err := db.Create(&models.Comment{Text: "hi", PostID: postID, AuthorID: author.ID}).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	if err := repo.DeleteWithComments(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := repo.GetByID(post.ID); got != nil {
		t.Fatalf("post should be deleted")
	}
	var remaining int64
	db.Model(&models.Comment{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("only comments of the other post should remain, got %d", remaining)
	}
}

func TestPostGetByIDMissing(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	post, err := repo.GetByID(404)
	if err != nil || post != nil {
		t.Fatalf("missing post should return nil,nil got %v,%v", post, err)
	}
}

func TestPostListIDs(t *testing.T) {
	db := setupBlogDB(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "author")
	for i := 0; i < 5; i++ {
		createPost(t, db, postSeed{title: "p", authorID: author.ID, published: true, pubDate: time.Now()})
	}
	first, err := repo.ListIDs(0, 3)
	if err != nil || len(first) != 3 {
		t.Fatalf("first batch want 3 got %v (%v)", first, err)
	}
	rest, err := repo.ListIDs(first[len(first)-1], 3)
	if err != nil || len(rest) != 2 {
		t.Fatalf("second batch want 2 got %v (%v)", rest, err)
	}
}
