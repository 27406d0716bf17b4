package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/policy"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart failed: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func TestSaveFileStoresPostImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(config.UploadConfig{
		Dir:               dir,
		MaxSize:           1 << 20,
		AllowedTypes:      []string{"image/png"},
		AllowedExtensions: []string{"png"},
		MaxWidth:          100,
		MaxHeight:         100,
	})
	viewer := policy.Authenticated(1, "leo")

	if _, err := svc.SaveFile(policy.Anonymous(), multipartFile(t, "a.png", pngBytes(t, 4, 4)), "post"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous upload want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.SaveFile(viewer, multipartFile(t, "a.txt", []byte("hello")), "post"); !errors.Is(err, ErrUploadRejected) {
		t.Fatalf("txt upload want ErrUploadRejected, got %v", err)
	}
	if _, err := svc.SaveFile(viewer, multipartFile(t, "big.png", pngBytes(t, 200, 10)), "post"); !errors.Is(err, ErrUploadRejected) {
		t.Fatalf("oversized image want ErrUploadRejected, got %v", err)
	}

	path, err := svc.SaveFile(viewer, multipartFile(t, "a.png", pngBytes(t, 4, 4)), "post")
	if err != nil {
		t.Fatalf("save file failed: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/post/") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected path: %s", path)
	}
	local := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(path, "/uploads/")))
	if _, err := os.Stat(local); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestNormalizeUploadScene(t *testing.T) {
	if normalizeUploadScene("POST") != "post" || normalizeUploadScene("../etc") != "common" || normalizeUploadScene("") != "common" {
		t.Fatalf("unexpected scene normalization")
	}
}
