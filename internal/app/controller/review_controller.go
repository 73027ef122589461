package controller

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
	"github.com/Cup-Trail/cup-trail-sub000/internal/storage"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type MediaPayload struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Data        string `json:"data" binding:"required"` // base64
}

type SubmitReviewRequest struct {
	DrinkName string         `json:"drink_name" binding:"required"`
	Rating    float64        `json:"rating"`
	Comment   string         `json:"comment" binding:"required"`
	Price     *float64       `json:"price"`
	Media     []MediaPayload `json:"media"`
}

// SubmitReview creates a review for a drink at a shop, resolving the
// drink and the shop-drink association on the way. The review itself is
// the durable part: when a later stage fails (media upload, cover photo,
// rating recompute) the committed review is still returned, with the
// failed stage flagged so the client can retry or surface a notice.
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid review payload")
		return
	}

	media, ok := decodeMedia(c, req.Media)
	if !ok {
		return
	}

	input := service.SubmitReviewInput{
		ShopID:    shopID,
		DrinkName: req.DrinkName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Price:     req.Price,
		Media:     media,
	}
	if userID, exists := middleware.GetUserID(c); exists {
		input.UserID = &userID
	}

	review, err := ctrl.reviewService.SubmitReview(c.Request.Context(), input)
	if err != nil {
		if pipeErr, ok := apperrors.AsPipeline(err); ok {
			// The review row committed; report the degraded stage.
			log.Warn("Review committed with a failed pipeline stage", map[string]interface{}{
				"review_id": pipeErr.ReviewID,
				"stage":     string(pipeErr.Stage),
				"error":     pipeErr.Error(),
			})
			c.JSON(http.StatusCreated, gin.H{
				"review": review,
				"warning": gin.H{
					"error":     apperrors.ReviewPartialFailure,
					"stage":     string(pipeErr.Stage),
					"review_id": pipeErr.ReviewID,
				},
			})
			return
		}
		if err == service.ErrShopNotFound {
			apperrors.NotFound(c, apperrors.ShopNotFound, "shop not found")
			return
		}
		log.Error("Failed to submit review", err, map[string]interface{}{
			"shop_id":    shopID,
			"drink_name": req.DrinkName,
		})
		apperrors.Respond(c, err, "review")
		return
	}

	log.Info("Review submitted", map[string]interface{}{
		"review_id": review.ID,
		"shop_id":   shopID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"review": review,
	})
}

// GetShopDrinks lists a shop's drinks with their aggregates, highest
// rated first.
func (ctrl *ReviewController) GetShopDrinks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shopDrinks, err := ctrl.reviewService.GetShopDrinks(shopID)
	if err != nil {
		if err == service.ErrShopNotFound {
			apperrors.NotFound(c, apperrors.ShopNotFound, "shop not found")
			return
		}
		log.Error("Failed to fetch shop drinks", err, map[string]interface{}{
			"shop_id": shopID,
		})
		apperrors.InternalError(c, "failed to fetch shop drinks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop_drinks": shopDrinks,
		"count":       len(shopDrinks),
	})
}

// GetReviews lists reviews for a shop-drink association, newest first.
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopDrinkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := ctrl.reviewService.GetReviews(shopDrinkID, page, pageSize)
	if err != nil {
		if err == service.ErrShopDrinkNotFound {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "shop drink not found")
			return
		}
		log.Error("Failed to fetch reviews", err, map[string]interface{}{
			"shop_drink_id": shopDrinkID,
		})
		apperrors.InternalError(c, "failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   total,
		"page":    page,
	})
}

// RecomputeRating re-derives a shop-drink's average from its reviews.
// Safe to call any number of times.
func (ctrl *ReviewController) RecomputeRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopDrinkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	avg, err := ctrl.reviewService.RecomputeAverage(shopDrinkID)
	if err != nil {
		if err == service.ErrShopDrinkNotFound {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "shop drink not found")
			return
		}
		log.Error("Failed to recompute rating", err, map[string]interface{}{
			"shop_drink_id": shopDrinkID,
		})
		apperrors.InternalError(c, "failed to recompute rating")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop_drink_id": shopDrinkID,
		"avg_rating":    avg,
	})
}

func decodeMedia(c *gin.Context, payloads []MediaPayload) ([]service.MediaRef, bool) {
	if len(payloads) == 0 {
		return nil, true
	}

	refs := make([]service.MediaRef, 0, len(payloads))
	for _, p := range payloads {
		if !storage.ValidateContentType(p.ContentType) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "unsupported media type: "+p.ContentType)
			return nil, false
		}
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "media data must be base64 encoded")
			return nil, false
		}
		refs = append(refs, service.MediaRef{
			Data:        data,
			Filename:    p.Filename,
			ContentType: p.ContentType,
		})
	}
	return refs, true
}
