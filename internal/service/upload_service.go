package service

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/policy"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	constants.UploadScenePost:   {},
	constants.UploadSceneAvatar: {},
	constants.UploadSceneCommon: {},
}

// UploadService 图片上传服务
type UploadService struct {
	cfg config.UploadConfig
	now func() time.Time
}

// NewUploadService 创建上传服务
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "./uploads"
	}
	return &UploadService{cfg: cfg, now: time.Now}
}

// Dir 上传根目录
func (s *UploadService) Dir() string {
	return s.cfg.Dir
}

// SaveFile 校验并保存上传文件，返回以 /uploads 开头的访问路径
func (s *UploadService) SaveFile(viewer policy.Viewer, file *multipart.FileHeader, scene string) (string, error) {
	if !viewer.IsAuthenticated() {
		return "", ErrUnauthorized
	}
	if file == nil {
		return "", fmt.Errorf("%w: empty file", ErrUploadRejected)
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrUploadRejected, s.cfg.MaxSize/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", fmt.Errorf("%w: extension %q not allowed", ErrUploadRejected, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return "", fmt.Errorf("%w: content type %q not allowed", ErrUploadRejected, contentType)
	}
	if strings.HasPrefix(contentType, "image/") {
		width, height, err := decodeImageDimensions(src, contentType)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadRejected, err)
		}
		if (s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth) || (s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight) {
			return "", fmt.Errorf("%w: image %dx%d too large", ErrUploadRejected, width, height)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	now := s.now()
	year, month := now.Format("2006"), now.Format("01")
	filename := uuid.New().String() + ext
	savePath := filepath.Join(s.cfg.Dir, normalizedScene, year, month, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return constants.UploadSceneCommon
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, item := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	if strings.EqualFold(contentType, "image/webp") {
		return decodeWebPDimensions(src)
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// decodeWebPDimensions 读取 RIFF 容器中的 VP8X / VP8 / VP8L 尺寸
func decodeWebPDimensions(src io.Reader) (int, int, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("invalid webp header")
	}
	for {
		chunk := make([]byte, 8)
		if _, err := io.ReadFull(src, chunk); err != nil {
			return 0, 0, err
		}
		size := int(binary.LittleEndian.Uint32(chunk[4:8]))
		data := make([]byte, size+size%2)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}
		switch string(chunk[0:4]) {
		case "VP8X":
			if size < 10 {
				return 0, 0, errors.New("short VP8X chunk")
			}
			width := 1 + (int(data[4]) | int(data[5])<<8 | int(data[6])<<16)
			height := 1 + (int(data[7]) | int(data[8])<<8 | int(data[9])<<16)
			return width, height, nil
		case "VP8 ":
			if size < 10 {
				return 0, 0, errors.New("short VP8 chunk")
			}
			return int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF), int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF), nil
		case "VP8L":
			if size < 5 || data[0] != 0x2f {
				return 0, 0, errors.New("invalid VP8L chunk")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1, nil
		}
	}
}
