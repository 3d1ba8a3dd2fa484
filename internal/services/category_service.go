package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tasktrack/internal/models"
	"tasktrack/internal/repository"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryExists       = errors.New("category already exists")
)

// CategoryService handles category CRUD. Categories are global named tags;
// they carry no owner.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a new category with a unique, non-empty name.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	if _, err := s.categoryRepo.FindByName(name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// List returns all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Delete removes a category. Tasks referencing it keep existing with their
// category cleared.
func (s *CategoryService) Delete(id uint64) error {
	rows, err := s.categoryRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
