package service

import (
	"strings"

	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// LocationService 地点业务服务
type LocationService struct {
	repo repository.LocationRepository
}

// NewLocationService 创建地点服务
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// LocationInput 创建/更新地点输入
type LocationInput struct {
	Name        string
	IsPublished *bool
}

// List 地点列表
func (s *LocationService) List(filter repository.LocationListFilter) ([]models.Location, int64, error) {
	return s.repo.List(filter)
}

// Get 获取地点
func (s *LocationService) Get(id uint) (*models.Location, error) {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}
	return location, nil
}

// Create 创建地点
func (s *LocationService) Create(input LocationInput) (*models.Location, error) {
	name, err := normalizeLocationName(input.Name)
	if err != nil {
		return nil, err
	}
	location := models.Location{Name: name, IsPublished: true}
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}
	if err := s.repo.Create(&location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Update 更新地点
func (s *LocationService) Update(id uint, input LocationInput) (*models.Location, error) {
	location, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeLocationName(input.Name)
	if err != nil {
		return nil, err
	}
	location.Name = name
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}
	if err := s.repo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete 删除地点
func (s *LocationService) Delete(id uint) (*models.Location, error) {
	location, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(location.ID); err != nil {
		return nil, err
	}
	return location, nil
}

func normalizeLocationName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 256 {
		return "", ErrLocationNameMissing
	}
	return name, nil
}
