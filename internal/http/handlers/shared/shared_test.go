package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blogicum/internal/policy"

	"github.com/gin-gonic/gin"
)

func TestViewerDefaultsToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if Viewer(c).IsAuthenticated() {
		t.Fatalf("expected anonymous viewer")
	}
	c.Set(ContextKeyViewer, policy.Authenticated(3, "leo"))
	if got := Viewer(c); got.ID != 3 || got.Username != "leo" {
		t.Fatalf("unexpected viewer: %+v", got)
	}
}

func TestParamUintRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if _, ok := ParamUint(c, "id"); ok {
		t.Fatalf("expected parse failure")
	}
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404, got %d", w.Code)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 1000)
	if page != 1 || size != 100 {
		t.Fatalf("unexpected normalization: %d %d", page, size)
	}
}

func TestMessageFallsBackToKey(t *testing.T) {
	if Message("error.unknown_key") != "error.unknown_key" {
		t.Fatalf("unknown key should be returned as-is")
	}
	if Message("error.not_found") == "error.not_found" {
		t.Fatalf("known key should be translated")
	}
}
