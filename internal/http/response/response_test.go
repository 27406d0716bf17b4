package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, w
}

func TestErrorUsesRealStatus(t *testing.T) {
	c, w := newTestContext("application/json")
	c.Set("request_id", "rid-1")
	NotFound(c, "post not found")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404, got %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Msg != "post not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if data, ok := body.Data.(map[string]interface{}); !ok || data["request_id"] != "rid-1" {
		t.Fatalf("request_id missing: %+v", body.Data)
	}
}

func TestErrorRendersHTMLForBrowsers(t *testing.T) {
	c, w := newTestContext("text/html,application/xhtml+xml")
	Forbidden(c, "not yours")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("content type want html, got %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "not yours") {
		t.Fatalf("message missing from page: %s", w.Body.String())
	}
}

func TestRedirect(t *testing.T) {
	c, w := newTestContext("")
	Redirect(c, "/api/v1/posts/3")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/api/v1/posts/3" {
		t.Fatalf("unexpected redirect: code=%d location=%s", w.Code, w.Header().Get("Location"))
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	if p.TotalPage != 3 || p.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("db down")
	err := WrapError(CodeInternal, "load failed", cause)
	if !errors.Is(err, cause) || err.Error() != "load failed: db down" {
		t.Fatalf("unexpected app error: %v", err)
	}
	if !err.Internal() || err.Key != "" {
		t.Fatalf("wrapped internal error: %+v", err)
	}
}

func TestNewErrorLogFields(t *testing.T) {
	err := NewError(CodeNotFound, "error.post_not_found", "Публикация не найдена", nil)
	if err.Internal() {
		t.Fatalf("404 should not be internal")
	}
	fields := err.LogFields()
	if len(fields) != 6 || fields[4] != "key" || fields[5] != "error.post_not_found" {
		t.Fatalf("unexpected log fields: %v", fields)
	}
	if err.Error() != "Публикация не найдена" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
