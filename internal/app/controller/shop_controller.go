package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
)

type ShopController struct {
	shopService service.ShopService
}

func NewShopController(shopService service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

type ResolveShopRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	PlaceID   string   `json:"place_id"`
}

// ResolveShop maps loosely-structured place input to the canonical shop
// row, creating it on first sight. The same payload always lands on the
// same shop, so clients call this freely before submitting a review.
func (ctrl *ShopController) ResolveShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResolveShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid shop payload")
		return
	}

	shop, err := ctrl.shopService.ResolveShop(service.ResolveShopInput{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PlaceID:   req.PlaceID,
	})
	if err != nil {
		log.Error("Failed to resolve shop", err, map[string]interface{}{
			"name":     req.Name,
			"place_id": req.PlaceID,
		})
		apperrors.Respond(c, err, "shop")
		return
	}

	log.Info("Shop resolved", map[string]interface{}{
		"shop_id":  shop.ID,
		"place_id": req.PlaceID,
	})

	c.JSON(http.StatusOK, gin.H{
		"shop": shop,
	})
}

func (ctrl *ShopController) GetShopByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := ctrl.shopService.GetShopByID(id)
	if err != nil {
		if err == service.ErrShopNotFound {
			apperrors.NotFound(c, apperrors.ShopNotFound, "shop not found")
			return
		}
		log.Error("Failed to fetch shop", err, map[string]interface{}{
			"shop_id": id,
		})
		apperrors.InternalError(c, "failed to fetch shop")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop": shop,
	})
}

func (ctrl *ShopController) ListShops(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input := service.ListShopsInput{
		Search:          c.Query("search"),
		IncludeArchived: strings.EqualFold(c.DefaultQuery("include_archived", "false"), "true"),
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid coordinates")
			return
		}
		input.Near = &service.Coordinates{Latitude: lat, Longitude: lng}
	}

	shops, err := ctrl.shopService.ListShops(input)
	if err != nil {
		log.Error("Failed to list shops", err, nil)
		apperrors.InternalError(c, "failed to fetch shops")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shops": shops,
		"count": len(shops),
	})
}

// ArchiveShop soft-deletes a shop; its reviews and ratings stay readable.
func (ctrl *ShopController) ArchiveShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.shopService.ArchiveShop(id); err != nil {
		if err == service.ErrShopNotFound {
			apperrors.NotFound(c, apperrors.ShopNotFound, "shop not found")
			return
		}
		log.Error("Failed to archive shop", err, map[string]interface{}{
			"shop_id": id,
		})
		apperrors.InternalError(c, "failed to archive shop")
		return
	}

	log.Info("Shop archived", map[string]interface{}{
		"shop_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"archived": true,
	})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
