package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	validator       *utils.Validator
}

func NewCategoryHandler(categoryService *service.CategoryService, validator *utils.Validator) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(categories, ""))
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(category, "Category created"))
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Category deleted"))
}
