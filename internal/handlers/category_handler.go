package handlers

import (
	"errors"
	"net/http"

	"expense-tracker-api/internal/dto"
	apierrors "expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles the category catalogue endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns every category in the catalogue
// @Summary List expense categories
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse "Categories"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{
		Categories: toCategoryResponses(categories),
	})
}

// GetCategory returns a single category by ID
// @Summary Get a category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse "Category"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - CATEGORY_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - CATEGORY_001"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.CategoryInvalidID)
	}

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// CreateCategory adds a new category to the catalogue
// @Summary Create a category
// @Description Admin only. Category names are unique across the catalogue.
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse "Created category"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 403 {object} errors.ErrorResponse "Admin required - AUTH_005"
// @Failure 409 {object} errors.ErrorResponse "Name taken - CATEGORY_002"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		return h.mapCategoryError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategory renames or redescribes an existing category
// @Summary Update a category
// @Description Admin only
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category details"
// @Success 200 {object} dto.CategoryResponse "Updated category"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - CATEGORY_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - CATEGORY_001"
// @Failure 409 {object} errors.ErrorResponse "Name taken - CATEGORY_002"
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.CategoryInvalidID)
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		return h.mapCategoryError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory removes a category and every expense recorded against it
// @Summary Delete a category
// @Description Admin only. Expenses in the category are deleted with it.
// @Tags Categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - CATEGORY_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - CATEGORY_001"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.CategoryInvalidID)
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) mapCategoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, services.ErrCategoryNameTaken):
		return SendError(c, apierrors.CategoryAlreadyExists)
	case errors.Is(err, models.ErrCategoryNameRequired):
		return SendError(c, apierrors.ValidationRequiredField, apierrors.WithDetails("name: category name is required"))
	default:
		return SendSystemError(c, err)
	}
}
