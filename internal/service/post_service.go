package service

import (
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/policy"
	"github.com/blogicum/internal/repository"
)

// PostService 文章业务服务
// 负责文章的增删改、详情可见性判断以及首页/个人主页/分类页三种列表的查询组装。
type PostService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	categories   *CategoryService
	userRepo     repository.UserRepository
	paging       pageSizer
	now          func() time.Time
}

// NewPostService 创建文章服务
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	categories *CategoryService,
	blog config.BlogConfig,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		categories:   categories,
		paging:       newPageSizer(blog),
		now:          time.Now,
	}
}

// SetClock 替换时间来源
func (s *PostService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// PostInput 文章表单，作者与评论数不可由表单写入
type PostInput struct {
	Title       string
	Text        string
	PubDate     *time.Time
	LocationID  *uint
	CategoryID  *uint
	Image       *string
	IsPublished *bool
}

// PostDetail 文章详情
type PostDetail struct {
	Post     *models.Post
	Comments []models.Comment
	CanEdit  bool
}

// PostPage 文章分页结果
type PostPage struct {
	Posts    []models.Post
	Total    int64
	Page     int
	PageSize int
}

// ProfilePage 个人主页
type ProfilePage struct {
	Owner   *models.User
	IsOwner bool
	PostPage
}

// CategoryPage 分类页
type CategoryPage struct {
	Category *models.Category
	PostPage
}

// Create 发布文章，作者为当前访问者
func (s *PostService) Create(viewer policy.Viewer, input PostInput) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	post := &models.Post{
		AuthorID:    viewer.ID,
		IsPublished: true,
		PubDate:     s.now(),
	}
	if err := s.applyInput(post, input); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(post.ID)
}

// GetForEdit 读取待编辑文章，非作者返回 ErrForbidden（由调用方决定重定向）
func (s *PostService) GetForEdit(viewer policy.Viewer, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !policy.CanEdit(viewer, post.AuthorID) {
		return post, ErrForbidden
	}
	return post, nil
}

// Update 编辑文章
func (s *PostService) Update(viewer policy.Viewer, postID uint, input PostInput) (*models.Post, error) {
	post, err := s.GetForEdit(viewer, postID)
	if err != nil {
		return post, err
	}
	if err := s.applyInput(post, input); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.now()
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(post.ID)
}

// Delete 删除文章（连同评论）
func (s *PostService) Delete(viewer policy.Viewer, postID uint) error {
	if !viewer.IsAuthenticated() {
		return ErrUnauthorized
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if !policy.CanEdit(viewer, post.AuthorID) {
		return ErrForbidden
	}
	return s.postRepo.DeleteWithComments(post.ID)
}

// GetDetail 文章详情；对访问者不可见时与不存在一样返回 ErrNotFound
func (s *PostService) GetDetail(viewer policy.Viewer, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !policy.IsPostVisible(viewer, post, s.now()) {
		return nil, ErrNotFound
	}
	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:     post,
		Comments: comments,
		CanEdit:  policy.CanEdit(viewer, post.AuthorID),
	}, nil
}

// ListIndex 首页列表：按匿名访客的可见性过滤
func (s *PostService) ListIndex(page, pageSize int) (*PostPage, error) {
	page, pageSize = s.paging.normalize(page, pageSize)
	return s.list(repository.PostListFilter{
		Page:       page,
		PageSize:   pageSize,
		Visibility: &repository.PostVisibility{Now: s.now()},
	})
}

// ListProfile 个人主页：主人看到全部文章，其他人只看到可见文章
func (s *PostService) ListProfile(viewer policy.Viewer, username string, page, pageSize int) (*ProfilePage, error) {
	owner, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrNotFound
	}
	page, pageSize = s.paging.normalize(page, pageSize)
	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		AuthorID: owner.ID,
	}
	isOwner := policy.SeesAllPostsOf(viewer, owner.ID)
	if !isOwner {
		filter.Visibility = &repository.PostVisibility{ViewerID: viewer.ID, Now: s.now()}
	}
	result, err := s.list(filter)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{Owner: owner, IsOwner: isOwner, PostPage: *result}, nil
}

// ListCategory 分类页：分类不存在或未发布时返回 ErrNotFound
func (s *PostService) ListCategory(viewer policy.Viewer, slug string, page, pageSize int) (*CategoryPage, error) {
	category, err := s.categories.GetVisibleBySlug(slug)
	if err != nil {
		return nil, err
	}
	page, pageSize = s.paging.normalize(page, pageSize)
	result, err := s.list(repository.PostListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: category.ID,
		Visibility: &repository.PostVisibility{ViewerID: viewer.ID, Now: s.now()},
	})
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Category: category, PostPage: *result}, nil
}

func (s *PostService) list(filter repository.PostListFilter) (*PostPage, error) {
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *PostService) applyInput(post *models.Post, input PostInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrPostTitleRequired
	}
	if len([]rune(title)) > 256 {
		return ErrInvalidInput
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return ErrPostTextRequired
	}
	post.Title = title
	post.Text = text

	if input.PubDate != nil && !input.PubDate.IsZero() {
		post.PubDate = *input.PubDate
	}
	post.PubDate = post.PubDate.UTC()

	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return err
	}
	post.CategoryID = categoryID
	post.Category = nil

	locationID, err := s.resolveLocation(input.LocationID)
	if err != nil {
		return err
	}
	post.LocationID = locationID
	post.Location = nil

	if input.Image != nil {
		post.Image = strings.TrimSpace(*input.Image)
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	return nil
}

func (s *PostService) resolveCategory(id *uint) (*uint, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	category, err := s.categoryRepo.GetByID(*id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryInvalid
	}
	resolved := category.ID
	return &resolved, nil
}

func (s *PostService) resolveLocation(id *uint) (*uint, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	location, err := s.locationRepo.GetByID(*id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationInvalid
	}
	resolved := location.ID
	return &resolved, nil
}
