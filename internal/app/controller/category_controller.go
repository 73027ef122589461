package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// SuggestCategories proposes category slugs for a drink name. Suggestions
// are just that; nothing is persisted until AssignCategories.
func (ctrl *CategoryController) SuggestCategories(c *gin.Context) {
	drinkName := c.Query("drink_name")
	if drinkName == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "drink_name is required")
		return
	}

	slugs := ctrl.categoryService.SuggestCategories(drinkName)
	if slugs == nil {
		slugs = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"slugs": slugs,
	})
}

type AssignCategoriesRequest struct {
	Slugs []string `json:"slugs"`
}

// AssignCategories replaces the full tag set of a shop-drink association.
// An empty list clears all tags.
func (ctrl *CategoryController) AssignCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopDrinkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid category payload")
		return
	}

	if err := ctrl.categoryService.AssignCategories(shopDrinkID, req.Slugs); err != nil {
		if err == service.ErrShopDrinkNotFound {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "shop drink not found")
			return
		}
		if apperrors.IsValidation(err) {
			apperrors.Respond(c, err, "category")
			return
		}
		log.Error("Failed to assign categories", err, map[string]interface{}{
			"shop_drink_id": shopDrinkID,
		})
		apperrors.InternalError(c, "failed to assign categories")
		return
	}

	categories, err := ctrl.categoryService.GetAssignedCategories(shopDrinkID)
	if err != nil {
		log.Error("Failed to fetch assigned categories", err, map[string]interface{}{
			"shop_drink_id": shopDrinkID,
		})
		apperrors.InternalError(c, "failed to fetch assigned categories")
		return
	}

	log.Info("Categories assigned", map[string]interface{}{
		"shop_drink_id": shopDrinkID,
		"count":         len(categories),
	})

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}
