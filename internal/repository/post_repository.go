package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetByID(id uint) (*models.Post, error)
	GetByIDForUpdate(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	UpdateFields(id uint, fields map[string]interface{}) error
	SetCommentCount(id uint, count int64) error
	DeleteWithComments(id uint) error
	CountByCategory(categoryID uint) (int64, error)
	ListIDs(afterID uint, limit int) ([]uint, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PostRepository
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPostRepository) WithTx(tx *gorm.DB) PostRepository {
	if tx == nil {
		return r
	}
	return &GormPostRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormPostRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// VisiblePosts 文章可见性的 SQL 版本，与 policy.IsPostVisible 保持一致：
// 作者本人可见全部；其他人要求已发布、发布时间不晚于 now、分类为空或已发布。
// 使用 LEFT JOIN，无分类的文章不会被过滤掉。
func VisiblePosts(visibility PostVisibility) func(*gorm.DB) *gorm.DB {
	now := visibility.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("LEFT JOIN categories ON categories.id = posts.category_id")
		public := "(posts.is_published = ? AND posts.pub_date <= ? AND (posts.category_id IS NULL OR categories.is_published = ?))"
		if visibility.ViewerID != 0 {
			return db.Where("(posts.author_id = ? OR "+public+")", visibility.ViewerID, true, now, true)
		}
		return db.Where(public, true, now, true)
	}
}

func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Location")
}

// List 文章列表，默认按发布时间倒序
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if filter.Visibility != nil {
		query = VisiblePosts(*filter.Visibility)(query)
	}
	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.LocationID != 0 {
		query = query.Where("posts.location_id = ?", filter.LocationID)
	}
	if filter.IsPublished != nil {
		query = query.Where("posts.is_published = ?", *filter.IsPublished)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "posts.title", "posts.text")
		query = query.Where(condition, repeatLikeArgs("%"+escapeLike(search)+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "posts.pub_date DESC, posts.id DESC"
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var posts []models.Post
	if err := withPostRelations(query).Select("posts.*").Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章（含作者、分类、地点）
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	if id == 0 {
		return nil, nil
	}
	var post models.Post
	if err := r.db.Scopes(withPostRelations).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDForUpdate 加行锁读取文章（sqlite 下由库级写锁串行化）
func (r *GormPostRepository) GetByIDForUpdate(id uint) (*models.Post, error) {
	if id == 0 {
		return nil, nil
	}
	var post models.Post
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// Update 保存文章可编辑字段，评论数只由同步器写入
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Model(post).Omit(clause.Associations).Select(
		"title", "text", "pub_date", "location_id", "category_id", "image", "is_published", "updated_at",
	).Updates(post).Error
}

// UpdateFields 按字段更新
func (r *GormPostRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if id == 0 || len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

// SetCommentCount 写入评论数
func (r *GormPostRepository) SetCommentCount(id uint, count int64) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).UpdateColumn("comment_count", count).Error
}

// DeleteWithComments 删除文章及其评论
func (r *GormPostRepository) DeleteWithComments(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CountByCategory 统计引用某分类的文章数
func (r *GormPostRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListIDs 按主键游标分批返回文章 ID
func (r *GormPostRepository) ListIDs(afterID uint, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 100
	}
	var ids []uint
	if err := r.db.Model(&models.Post{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
