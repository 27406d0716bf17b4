package service

import (
	"errors"
	"testing"

	"github.com/blogicum/internal/models"
)

func TestCreateCategoryValidatesSlug(t *testing.T) {
	f := newBlogFixture(t)
	if _, err := f.categories.Create(CategoryInput{Title: "Travel", Slug: "bad slug"}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("invalid slug want ErrSlugInvalid, got %v", err)
	}
	if _, err := f.categories.Create(CategoryInput{Title: "", Slug: "travel"}); !errors.Is(err, ErrCategoryTitleMissing) {
		t.Fatalf("blank title want ErrCategoryTitleMissing, got %v", err)
	}
	category, err := f.categories.Create(CategoryInput{Title: "Travel", Slug: "travel"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if !category.IsPublished {
		t.Fatalf("category should default to published")
	}
	if _, err := f.categories.Create(CategoryInput{Title: "Travel 2", Slug: "travel"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists, got %v", err)
	}
}

func TestUpdateCategorySlugImmutableOnceReferenced(t *testing.T) {
	f := newBlogFixture(t)
	author := f.user(t, "author")
	category, err := f.categories.Create(CategoryInput{Title: "Travel", Slug: "travel"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := f.categories.Update(category.ID, CategoryInput{Title: "Trips", Slug: "trips"}); err != nil {
		t.Fatalf("rename unreferenced slug failed: %v", err)
	}
	f.post(t, author, "trip", func(p *models.Post) { p.CategoryID = &category.ID })

	if _, err := f.categories.Update(category.ID, CategoryInput{Title: "Trips", Slug: "journeys"}); !errors.Is(err, ErrSlugImmutable) {
		t.Fatalf("referenced slug change want ErrSlugImmutable, got %v", err)
	}
	hidden := false
	updated, err := f.categories.Update(category.ID, CategoryInput{Title: "Journeys", Slug: "trips", IsPublished: &hidden})
	if err != nil {
		t.Fatalf("update title failed: %v", err)
	}
	if updated.Title != "Journeys" || updated.IsPublished {
		t.Fatalf("unexpected category: %+v", updated)
	}
	if _, err := f.categories.GetVisibleBySlug("trips"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unpublished category want ErrNotFound, got %v", err)
	}
}

func TestDeleteCategoryKeepsPosts(t *testing.T) {
	f := newBlogFixture(t)
	author := f.user(t, "author")
	category := f.category(t, "travel", true)
	post := f.post(t, author, "trip", func(p *models.Post) { p.CategoryID = &category.ID })

	if _, err := f.categories.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	reloaded, err := f.postRepo.GetByID(post.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("post should survive category delete: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("category_id should be nulled, got %v", *reloaded.CategoryID)
	}
	if _, err := f.categories.Delete(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound, got %v", err)
	}
}

func TestLocationServiceCRUD(t *testing.T) {
	f := newBlogFixture(t)
	svc := NewLocationService(f.locationRepo())
	if _, err := svc.Create(LocationInput{Name: "  "}); !errors.Is(err, ErrLocationNameMissing) {
		t.Fatalf("blank name want ErrLocationNameMissing, got %v", err)
	}
	location, err := svc.Create(LocationInput{Name: "Moscow"})
	if err != nil {
		t.Fatalf("create location failed: %v", err)
	}
	off := false
	updated, err := svc.Update(location.ID, LocationInput{Name: "Saint Petersburg", IsPublished: &off})
	if err != nil {
		t.Fatalf("update location failed: %v", err)
	}
	if updated.Name != "Saint Petersburg" || updated.IsPublished {
		t.Fatalf("unexpected location: %+v", updated)
	}
	if _, err := svc.Delete(location.ID); err != nil {
		t.Fatalf("delete location failed: %v", err)
	}
	if _, err := svc.Get(location.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted location want ErrNotFound, got %v", err)
	}
}
