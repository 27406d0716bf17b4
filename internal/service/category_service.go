package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/policy"
	"github.com/blogicum/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CategoryService 分类业务服务
type CategoryService struct {
	repo     repository.CategoryRepository
	postRepo repository.PostRepository
	cacheTTL time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, postRepo repository.PostRepository, blog config.BlogConfig) *CategoryService {
	return &CategoryService{
		repo:     repo,
		postRepo: postRepo,
		cacheTTL: time.Duration(blog.CategoryCacheTTLSeconds) * time.Second,
	}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

// List 获取分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// GetVisibleBySlug 获取已发布分类，优先读取缓存
func (s *CategoryService) GetVisibleBySlug(slug string) (*models.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	ctx := context.Background()
	if snapshot, hit, err := cache.GetCategory(ctx, slug); err == nil && hit && snapshot.Slug == slug {
		category := snapshot.Model()
		if !policy.IsCategoryVisible(category) {
			return nil, ErrNotFound
		}
		return category, nil
	} else if err != nil {
		logger.Warnw("category_cache_read_failed", "slug", slug, "error", err)
	}

	category, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if err := cache.SetCategory(ctx, cache.BuildCategorySnapshot(category), s.cacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "slug", slug, "error", err)
	}
	if !policy.IsCategoryVisible(category) {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	title, slug, err := normalizeCategoryInput(input)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Slug:        slug,
		IsPublished: true,
	}
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类；已有文章引用时 slug 不允许修改
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	title, slug, err := normalizeCategoryInput(input)
	if err != nil {
		return nil, err
	}

	oldSlug := category.Slug
	if slug != oldSlug {
		used, err := s.postRepo.CountByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		if used > 0 {
			return nil, ErrSlugImmutable
		}
		count, err := s.repo.CountBySlug(slug, category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}

	category.Title = title
	category.Description = strings.TrimSpace(input.Description)
	category.Slug = slug
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate(oldSlug, slug)
	return category, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(id uint) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(category.ID); err != nil {
		return nil, err
	}
	s.invalidate(category.Slug)
	return category, nil
}

func (s *CategoryService) invalidate(slugs ...string) {
	for _, slug := range slugs {
		if err := cache.DelCategory(context.Background(), slug); err != nil {
			logger.Warnw("category_cache_invalidate_failed", "slug", slug, "error", err)
		}
	}
}

func normalizeCategoryInput(input CategoryInput) (string, string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > 256 {
		return "", "", ErrCategoryTitleMissing
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || len(slug) > 64 || !slugPattern.MatchString(slug) {
		return "", "", ErrSlugInvalid
	}
	return title, slug, nil
}
