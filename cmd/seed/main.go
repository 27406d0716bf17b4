package main

import (
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"
)

const demoPassword = "Blogicum2024!"

type postSeed struct {
	Title    string
	Text     string
	Author   string
	Category string
	Location string
	Offset   time.Duration // 相对当前时间，正数表示定时发布
	Draft    bool
	Comments []commentSeed
}

type commentSeed struct {
	Author string
	Text   string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加作者
	users := map[string]uint{}
	for _, seed := range []models.User{
		{Username: "leo", FirstName: "Лев", LastName: "Толстой", Email: "leo@example.com"},
		{Username: "anna", FirstName: "Анна", LastName: "Ахматова", Email: "anna@example.com"},
		{Username: "fedor", FirstName: "Фёдор", Email: "fedor@example.com"},
	} {
		var existing models.User
		if err := models.DB.Where("username = ?", seed.Username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", seed.Username)
			users[seed.Username] = existing.ID
			continue
		}
		hashed, err := service.HashPassword(demoPassword)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := seed
		user.PasswordHash = hashed
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", seed.Username, err)
			continue
		}
		users[user.Username] = user.ID
		stdLog.Printf("Created user: %s", user.Username)
	}

	// 添加分类
	categories := map[string]uint{}
	for _, seed := range []models.Category{
		{Title: "Путешествия", Slug: "travel", Description: "Заметки из поездок", IsPublished: true},
		{Title: "Кухня", Slug: "food", Description: "Рецепты и впечатления", IsPublished: true},
		{Title: "Черновые мысли", Slug: "drafts", Description: "Скрытая рубрика", IsPublished: false},
	} {
		var existing models.Category
		if err := models.DB.Where("slug = ?", seed.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Category already exists: %s", seed.Slug)
			categories[seed.Slug] = existing.ID
			continue
		}
		category := seed
		if err := models.DB.Create(&category).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", seed.Slug, err)
			continue
		}
		categories[category.Slug] = category.ID
		stdLog.Printf("Created category: %s", category.Slug)
	}

	// 添加地点
	locations := map[string]uint{}
	for _, seed := range []models.Location{
		{Name: "Москва", IsPublished: true},
		{Name: "Ясная Поляна", IsPublished: true},
	} {
		var existing models.Location
		if err := models.DB.Where("name = ?", seed.Name).First(&existing).Error; err == nil {
			locations[seed.Name] = existing.ID
			continue
		}
		location := seed
		if err := models.DB.Create(&location).Error; err != nil {
			stdLog.Printf("Failed to create location %s: %v", seed.Name, err)
			continue
		}
		locations[location.Name] = location.ID
		stdLog.Printf("Created location: %s", location.Name)
	}

	// 添加文章与评论，覆盖已发布、定时发布、草稿、隐藏分类几种可见性
	now := time.Now().UTC()
	posts := []postSeed{
		{
			Title: "Осень в Ясной Поляне", Text: "Листья, тишина и долгие прогулки.",
			Author: "leo", Category: "travel", Location: "Ясная Поляна", Offset: -72 * time.Hour,
			Comments: []commentSeed{
				{Author: "anna", Text: "Очень красиво!"},
				{Author: "fedor", Text: "Хочу туда съездить."},
			},
		},
		{
			Title: "Щи по-старинному", Text: "Капуста, говядина и терпение.",
			Author: "anna", Category: "food", Location: "Москва", Offset: -24 * time.Hour,
			Comments: []commentSeed{{Author: "leo", Text: "Попробую в воскресенье."}},
		},
		{
			Title: "Запланированная заметка", Text: "Появится завтра.",
			Author: "leo", Category: "travel", Offset: 24 * time.Hour,
		},
		{
			Title: "Неопубликованный черновик", Text: "Пока только для автора.",
			Author: "fedor", Offset: -time.Hour, Draft: true,
		},
		{
			Title: "Мысли вслух", Text: "Рубрика скрыта, пост виден только автору.",
			Author: "anna", Category: "drafts", Offset: -2 * time.Hour,
		},
	}

	for _, seed := range posts {
		authorID, ok := users[seed.Author]
		if !ok {
			stdLog.Printf("Skip post %q: author %s missing", seed.Title, seed.Author)
			continue
		}
		var existing models.Post
		if err := models.DB.Where("title = ? AND author_id = ?", seed.Title, authorID).First(&existing).Error; err == nil {
			stdLog.Printf("Post already exists: %s", seed.Title)
			continue
		}
		post := models.Post{
			Title:       seed.Title,
			Text:        seed.Text,
			AuthorID:    authorID,
			PubDate:     now.Add(seed.Offset),
			IsPublished: !seed.Draft,
		}
		if id, ok := categories[seed.Category]; ok {
			post.CategoryID = &id
		}
		if id, ok := locations[seed.Location]; ok {
			post.LocationID = &id
		}
		if err := models.DB.Create(&post).Error; err != nil {
			stdLog.Printf("Failed to create post %q: %v", seed.Title, err)
			continue
		}
		stdLog.Printf("Created post: %s", post.Title)

		for i, comment := range seed.Comments {
			commentAuthorID, ok := users[comment.Author]
			if !ok {
				continue
			}
			createdAt := post.PubDate.Add(time.Duration(i+1) * time.Minute)
			if err := models.DB.Create(&models.Comment{
				Text:      comment.Text,
				PostID:    post.ID,
				AuthorID:  commentAuthorID,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}).Error; err != nil {
				stdLog.Printf("Failed to create comment on %q: %v", post.Title, err)
			}
		}
	}

	// 评论直接写表，最后统一校正 comment_count
	counter := service.NewCommentCountSynchronizer(
		repository.NewPostRepository(models.DB),
		repository.NewCommentRepository(models.DB),
		nil,
		0,
	)
	fixed, err := counter.SweepAll(0)
	if err != nil {
		stdLog.Fatalf("Failed to sync comment counts: %v", err)
	}
	stdLog.Printf("Comment counts synced, fixed %d posts", fixed)
	stdLog.Printf("Seed completed, demo password: %s", demoPassword)
}
