package service

import (
	"strings"

	"github.com/sefazor/learnhub-backend/internal/models"
)

type CategoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

func (s *CategoryService) Create(req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := s.categoryRepo.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	return notFound(s.categoryRepo.Delete(id), ErrCategoryNotFound)
}
