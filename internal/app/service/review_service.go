package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/storage"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrShopDrinkNotFound = errors.New("drink listing not found")
)

// MediaRef is one piece of media attached to a review before upload.
type MediaRef struct {
	Data        []byte
	Filename    string
	ContentType string
}

// SubmitReviewInput is the full review submission payload.
type SubmitReviewInput struct {
	ShopID    uint
	DrinkName string
	Rating    float64
	Comment   string
	Price     *float64
	Media     []MediaRef
	UserID    *uint
}

type ReviewService interface {
	ResolveDrink(name string) (*model.Drink, error)
	ResolveShopDrink(shopID, drinkID uint, price *float64) (*model.ShopDrink, error)
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*model.Review, error)
	RecomputeAverage(shopDrinkID uint) (float64, error)
	GetShopDrinks(shopID uint) ([]model.ShopDrink, error)
	GetReviews(shopDrinkID uint, page, pageSize int) ([]model.Review, int64, error)
}

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	drinkRepo     repository.DrinkRepository
	shopDrinkRepo repository.ShopDrinkRepository
	shopRepo      repository.ShopRepository
	media         storage.MediaStorage
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	drinkRepo repository.DrinkRepository,
	shopDrinkRepo repository.ShopDrinkRepository,
	shopRepo repository.ShopRepository,
	media storage.MediaStorage,
) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		drinkRepo:     drinkRepo,
		shopDrinkRepo: shopDrinkRepo,
		shopRepo:      shopRepo,
		media:         media,
	}
}

// ResolveDrink gets or atomically creates the drink for a free-typed name.
// Matching is exact and case-sensitive as stored.
func (s *reviewService) ResolveDrink(name string) (*model.Drink, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidation("drink_name", "drink name is required")
	}
	return s.drinkRepo.GetOrCreate(name)
}

// ResolveShopDrink gets or atomically creates the (shop, drink)
// association with derived fields at their defaults.
func (s *reviewService) ResolveShopDrink(shopID, drinkID uint, price *float64) (*model.ShopDrink, error) {
	return s.shopDrinkRepo.GetOrCreate(shopID, drinkID, price)
}

// SubmitReview validates and runs the review pipeline: resolve the drink,
// resolve the association, insert the review row, then the best-effort
// stages: media upload, media URL backfill, cover photo, aggregate
// recompute. A stage failure after the insert returns the committed review
// together with a PipelineError naming the stage; nothing is rolled back.
func (s *reviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*model.Review, error) {
	// Preconditions, checked before any write.
	if strings.TrimSpace(input.DrinkName) == "" {
		return nil, apperrors.NewValidation("drink_name", "drink name is required")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, apperrors.NewValidation("rating", "rating must be between 0 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, apperrors.NewValidation("comment", "comment is required")
	}

	shop, err := s.shopRepo.FindByID(input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	drink, err := s.drinkRepo.GetOrCreate(input.DrinkName)
	if err != nil {
		return nil, err
	}

	shopDrink, err := s.shopDrinkRepo.GetOrCreate(shop.ID, drink.ID, input.Price)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		ShopDrinkID: shopDrink.ID,
		UserID:      input.UserID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// The review is committed. Everything below is best-effort and
	// reported per stage.
	if len(input.Media) > 0 {
		urls, err := s.uploadMedia(ctx, review.ID, input.Media)
		if err != nil {
			return review, apperrors.NewPipeline(apperrors.StageMediaUpload, review.ID, err)
		}
		if err := s.reviewRepo.UpdateMediaURLs(review.ID, urls); err != nil {
			return review, apperrors.NewPipeline(apperrors.StageMediaBackfill, review.ID, err)
		}
		review.MediaURLs = urls

		cover := SelectCoverPhoto(shopDrink.CoverPhotoURL, urls)
		if cover != "" && cover != shopDrink.CoverPhotoURL {
			if err := s.shopDrinkRepo.UpdateCoverPhoto(shopDrink.ID, cover); err != nil {
				return review, apperrors.NewPipeline(apperrors.StageCoverPhoto, review.ID, err)
			}
		}
	}

	if _, err := s.RecomputeAverage(shopDrink.ID); err != nil {
		return review, apperrors.NewPipeline(apperrors.StageAggregate, review.ID, err)
	}

	return review, nil
}

func (s *reviewService) uploadMedia(ctx context.Context, reviewID uint, refs []MediaRef) ([]string, error) {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		ext := filepath.Ext(ref.Filename)
		path := fmt.Sprintf("reviews/%d/%s%s", reviewID, uuid.New().String(), ext)
		url, err := s.media.Upload(ctx, ref.Data, path, ref.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", ref.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// RecomputeAverage rebuilds avg_rating from every review of the
// association: always a full recompute from source rows, so retries and
// sweeps are idempotent and any drift self-heals. Zero reviews leave the
// stored value untouched.
func (s *reviewService) RecomputeAverage(shopDrinkID uint) (float64, error) {
	shopDrink, err := s.shopDrinkRepo.FindByID(shopDrinkID)
	if err != nil {
		return 0, err
	}
	if shopDrink == nil {
		return 0, ErrShopDrinkNotFound
	}

	avg, count, err := s.reviewRepo.RatingStats(shopDrinkID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return shopDrink.AvgRating, nil
	}

	rounded := math.Round(avg*10) / 10
	if err := s.shopDrinkRepo.UpdateAvgRating(shopDrinkID, rounded); err != nil {
		return 0, err
	}

	logger.Debug("Recomputed average rating", map[string]interface{}{
		"shop_drink_id": shopDrinkID,
		"avg_rating":    rounded,
		"review_count":  count,
	})
	return rounded, nil
}

func (s *reviewService) GetShopDrinks(shopID uint) ([]model.ShopDrink, error) {
	shop, err := s.shopRepo.FindByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return s.shopDrinkRepo.ListByShop(shopID)
}

func (s *reviewService) GetReviews(shopDrinkID uint, page, pageSize int) ([]model.Review, int64, error) {
	shopDrink, err := s.shopDrinkRepo.FindByID(shopDrinkID)
	if err != nil {
		return nil, 0, err
	}
	if shopDrink == nil {
		return nil, 0, ErrShopDrinkNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.reviewRepo.ListByShopDrink(shopDrinkID, offset, pageSize)
}
