package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/places"
)

// PlaceController proxies place detail lookups so the provider API key
// stays server-side.
type PlaceController struct {
	placesClient *places.Client
}

func NewPlaceController(placesClient *places.Client) *PlaceController {
	return &PlaceController{placesClient: placesClient}
}

func (ctrl *PlaceController) GetPlaceDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.placesClient == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.PlacesLookupFailed, "place lookups are not configured")
		return
	}

	placeID := c.Param("place_id")
	if placeID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "place_id is required")
		return
	}

	details, err := ctrl.placesClient.Details(c.Request.Context(), placeID)
	if err != nil {
		log.Error("Place details lookup failed", err, map[string]interface{}{
			"place_id": placeID,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.PlacesLookupFailed, "place lookup failed")
		return
	}
	if details == nil {
		apperrors.NotFound(c, apperrors.PlaceNotFound, "place not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"place": details,
	})
}
