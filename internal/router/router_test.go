package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!x"

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type blogServer struct {
	t         *testing.T
	db        *gorm.DB
	engine    *gin.Engine
	container *provider.Container
}

func setupBlogServer(t *testing.T) *blogServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name)), &gorm.Config{})
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

	prevDB := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prevDB })

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "admin-test-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-test-secret", ExpireHours: 1},
		Upload:  config.UploadConfig{Dir: t.TempDir()},
		Blog:    config.BlogConfig{PaginateBy: 10, MaxPageSize: 50},
	}
	container := provider.NewContainer(cfg)
	return &blogServer{
		t:         t,
		db:        db,
		engine:    SetupRouter(cfg, container),
		container: container,
	}
}

func (s *blogServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope failed: %v body=%s", err, w.Body.String())
	}
	if dest == nil {
		return
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("unmarshal data failed: %v data=%s", err, string(env.Data))
	}
}

func (s *blogServer) register(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register %s: status want 201 got %d body=%s", username, w.Code, w.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
	}
	decodeData(s.t, w, &payload)
	if payload.Token == "" {
		s.t.Fatalf("register %s: empty token", username)
	}
	return payload.Token
}

func (s *blogServer) createPost(token string, body gin.H) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/posts", token, body)
	if w.Code != http.StatusCreated {
		s.t.Fatalf("create post: status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	var post models.Post
	decodeData(s.t, w, &post)
	if post.ID == 0 {
		s.t.Fatalf("create post: missing id")
	}
	if got := w.Header().Get("Location"); got != fmt.Sprintf("/api/v1/posts/%d", post.ID) {
		s.t.Fatalf("create post: unexpected location %q", got)
	}
	return post.ID
}

func (s *blogServer) createAdmin(username string, isSuper bool, roles ...string) string {
	s.t.Helper()
	hashed, err := service.HashPassword(testPassword)
	if err != nil {
		s.t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: hashed, IsSuper: isSuper}
	if err := s.db.Create(admin).Error; err != nil {
		s.t.Fatalf("create admin failed: %v", err)
	}
	if len(roles) > 0 {
		if err := s.container.AuthzService.SetAdminRoles(admin.ID, roles); err != nil {
			s.t.Fatalf("set admin roles failed: %v", err)
		}
	}
	w := s.do(http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	if w.Code != http.StatusOK {
		s.t.Fatalf("admin login: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
	}
	decodeData(s.t, w, &payload)
	return payload.Token
}

func postPath(id uint) string {
	return fmt.Sprintf("/api/v1/posts/%d", id)
}

func TestUnpublishedPostVisibleOnlyToAuthor(t *testing.T) {
	s := setupBlogServer(t)
	authorToken := s.register("anna")
	readerToken := s.register("boris")

	id := s.createPost(authorToken, gin.H{
		"title":        "Черновик",
		"text":         "ещё не готово",
		"is_published": false,
	})

	if w := s.do(http.MethodGet, postPath(id), "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("anonymous: status want 404 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, postPath(id), readerToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("reader: status want 404 got %d", w.Code)
	}

	w := s.do(http.MethodGet, postPath(id), authorToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("author: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var detail struct {
		CanEdit bool `json:"can_edit"`
	}
	decodeData(t, w, &detail)
	if !detail.CanEdit {
		t.Fatalf("author should be able to edit own post")
	}

	w = s.do(http.MethodGet, "/api/v1/posts", "", nil)
	var posts []models.Post
	decodeData(t, w, &posts)
	if len(posts) != 0 {
		t.Fatalf("index should hide unpublished posts, got %d", len(posts))
	}
}

func TestUnpublishedCategoryPageReturns404(t *testing.T) {
	s := setupBlogServer(t)
	categories := []models.Category{
		{Title: "Путешествия", Slug: "travel", IsPublished: false},
		{Title: "Кухня", Slug: "food", IsPublished: true},
	}
	if err := s.db.Create(&categories).Error; err != nil {
		t.Fatalf("create categories failed: %v", err)
	}

	if w := s.do(http.MethodGet, "/api/v1/category/travel", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unpublished category: status want 404 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/category/missing", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing category: status want 404 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/category/food", "", nil); w.Code != http.StatusOK {
		t.Fatalf("published category: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestForeignPostEditRedirectsToDetail(t *testing.T) {
	s := setupBlogServer(t)
	authorToken := s.register("anna")
	readerToken := s.register("boris")
	id := s.createPost(authorToken, gin.H{"title": "Заметка", "text": "текст"})

	for _, token := range []string{readerToken, ""} {
		w := s.do(http.MethodGet, postPath(id)+"/edit", token, nil)
		if w.Code != http.StatusFound {
			t.Fatalf("status want 302 got %d body=%s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != postPath(id) {
			t.Fatalf("location want %s got %s", postPath(id), got)
		}
	}

	w := s.do(http.MethodPut, postPath(id), readerToken, gin.H{"title": "Чужая", "text": "правка"})
	if w.Code != http.StatusFound {
		t.Fatalf("foreign update: status want 302 got %d", w.Code)
	}
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		t.Fatalf("load post failed: %v", err)
	}
	if post.Title != "Заметка" {
		t.Fatalf("foreign update must not change the post, got title %q", post.Title)
	}

	if w := s.do(http.MethodDelete, postPath(id), readerToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status want 403 got %d", w.Code)
	}
}

func TestCommentLifecycleKeepsCountInSync(t *testing.T) {
	s := setupBlogServer(t)
	authorToken := s.register("anna")
	readerToken := s.register("boris")
	id := s.createPost(authorToken, gin.H{"title": "Обсуждение", "text": "пишите"})

	if w := s.do(http.MethodPost, postPath(id)+"/comments", "", gin.H{"text": "аноним"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous comment: status want 401 got %d", w.Code)
	}

	w := s.do(http.MethodPost, postPath(id)+"/comments", readerToken, gin.H{"text": "Отличный пост"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment: status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	var comment models.Comment
	decodeData(t, w, &comment)

	commentCount := func() int64 {
		t.Helper()
		w := s.do(http.MethodGet, postPath(id), "", nil)
		var detail struct {
			Post     models.Post      `json:"post"`
			Comments []models.Comment `json:"comments"`
		}
		decodeData(t, w, &detail)
		if int64(len(detail.Comments)) != detail.Post.CommentCount {
			t.Fatalf("comment_count %d does not match %d listed comments", detail.Post.CommentCount, len(detail.Comments))
		}
		return detail.Post.CommentCount
	}
	if got := commentCount(); got != 1 {
		t.Fatalf("comment_count want 1 got %d", got)
	}

	commentPath := fmt.Sprintf("%s/comments/%d", postPath(id), comment.ID)
	if w := s.do(http.MethodDelete, commentPath, authorToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("post author deleting foreign comment: status want 403 got %d", w.Code)
	}
	if w := s.do(http.MethodPut, commentPath, authorToken, gin.H{"text": "правка"}); w.Code != http.StatusForbidden {
		t.Fatalf("post author editing foreign comment: status want 403 got %d", w.Code)
	}
	if w := s.do(http.MethodDelete, commentPath, readerToken, nil); w.Code != http.StatusOK {
		t.Fatalf("comment author delete: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	if got := commentCount(); got != 0 {
		t.Fatalf("comment_count want 0 got %d", got)
	}
}

func TestProfileEditRequiresLogin(t *testing.T) {
	s := setupBlogServer(t)
	token := s.register("anna")

	if w := s.do(http.MethodGet, "/api/v1/profile/edit", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("anonymous profile edit: status want 404 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/profile/edit", token, nil); w.Code != http.StatusOK {
		t.Fatalf("owner profile edit: status want 200 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/profile/nobody", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown profile: status want 404 got %d", w.Code)
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := setupBlogServer(t)
	if w := s.do(http.MethodGet, "/api/v1/posts", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestAdminRBACAndModerationLog(t *testing.T) {
	s := setupBlogServer(t)
	authorToken := s.register("anna")
	id := s.createPost(authorToken, gin.H{"title": "Спам", "text": "купите"})

	auditorToken := s.createAdmin("auditor", false, authz.RoleReadonlyAuditor)
	superToken := s.createAdmin("root", true)
	adminPostPath := fmt.Sprintf("/api/v1/admin/posts/%d", id)

	if w := s.do(http.MethodGet, "/api/v1/admin/posts", auditorToken, nil); w.Code != http.StatusOK {
		t.Fatalf("auditor list: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodDelete, adminPostPath, auditorToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("auditor delete: status want 403 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/admin/me", auditorToken, nil); w.Code != http.StatusOK {
		t.Fatalf("auditor me: status want 200 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/admin/posts", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status want 401 got %d", w.Code)
	}

	if w := s.do(http.MethodDelete, adminPostPath, superToken, nil); w.Code != http.StatusOK {
		t.Fatalf("super delete: status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, postPath(id), "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted post: status want 404 got %d", w.Code)
	}

	var logs []models.ModerationLog
	if err := s.db.Where("action = ? AND target_id = ?", constants.ModerationActionDelete, id).Find(&logs).Error; err != nil {
		t.Fatalf("load moderation logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("moderation log want 1 got %d", len(logs))
	}
	if logs[0].OperatorUsername != "root" || logs[0].TargetType != constants.ModerationTargetPost {
		t.Fatalf("unexpected moderation log: %+v", logs[0])
	}
}

func TestAdminPermissionCatalogSkipsSelfRoutes(t *testing.T) {
	s := setupBlogServer(t)
	for _, item := range buildAdminPermissionCatalog(s.engine) {
		switch item.Object {
		case "/admin/login", "/admin/me", "/admin/password":
			t.Fatalf("catalog should not list %s", item.Object)
		}
	}
}

func TestStaticPagesAndHealth(t *testing.T) {
	s := setupBlogServer(t)

	w := s.do(http.MethodGet, "/api/v1/pages/"+constants.PageRules, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rules page status want 200 got %d", w.Code)
	}
	var page struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	decodeData(t, w, &page)
	if page.Slug != constants.PageRules || page.Title == "" {
		t.Fatalf("unexpected page: %+v", page)
	}

	if w := s.do(http.MethodGet, "/api/v1/pages/missing", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing page status want 404 got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health status want 200 got %d", w.Code)
	}
}

func TestOverlongInputIsBadRequest(t *testing.T) {
	s := setupBlogServer(t)
	token := s.register("anna")

	w := s.do(http.MethodPost, "/api/v1/posts", token, gin.H{
		"title": strings.Repeat("я", 257),
		"text":  "текст",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overlong title: status want 400 got %d body=%s", w.Code, w.Body.String())
	}

	id := s.createPost(token, gin.H{"title": "Заметка", "text": "текст"})
	w = s.do(http.MethodPost, postPath(id)+"/comments", token, gin.H{"text": strings.Repeat("к", 4001)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overlong comment: status want 400 got %d body=%s", w.Code, w.Body.String())
	}
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		t.Fatalf("load post failed: %v", err)
	}
	if post.CommentCount != 0 {
		t.Fatalf("rejected comment must not count, got %d", post.CommentCount)
	}
}

func TestForeignPostUpdateRedirectsBeforeBodyCheck(t *testing.T) {
	s := setupBlogServer(t)
	authorToken := s.register("anna")
	readerToken := s.register("boris")
	id := s.createPost(authorToken, gin.H{"title": "Заметка", "text": "текст"})

	send := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, postPath(id), strings.NewReader(`{"title":`))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w
	}

	for _, token := range []string{readerToken, ""} {
		w := send(token)
		if w.Code != http.StatusFound {
			t.Fatalf("malformed foreign update: status want 302 got %d body=%s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != postPath(id) {
			t.Fatalf("location want %s got %s", postPath(id), got)
		}
	}
	if w := send(authorToken); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed author update: status want 400 got %d", w.Code)
	}
}
