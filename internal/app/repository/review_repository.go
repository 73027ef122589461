package repository

import (
	"fmt"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	ListByShopDrink(shopDrinkID uint, offset, limit int) ([]model.Review, int64, error)
	UpdateMediaURLs(id uint, urls []string) error
	RatingStats(shopDrinkID uint) (avg float64, count int64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return apperrors.NewStore("review.create", fmt.Sprintf("shop_drink_id=%d", review.ShopDrinkID), err)
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("review.findByID", fmt.Sprintf("id=%d", id), err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByShopDrink(shopDrinkID uint, offset, limit int) ([]model.Review, int64, error) {
	query := r.db.Model(&model.Review{}).Where("shop_drink_id = ?", shopDrinkID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewStore("review.listByShopDrink", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}

	var reviews []model.Review
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, apperrors.NewStore("review.listByShopDrink", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}

	return reviews, total, nil
}

// UpdateMediaURLs backfills the media URL list after asynchronous upload.
// This is the only mutation a review row ever sees.
func (r *reviewRepository) UpdateMediaURLs(id uint, urls []string) error {
	err := r.db.Model(&model.Review{}).Where("id = ?", id).
		UpdateColumn("media_urls", model.StringArray(urls)).Error
	if err != nil {
		return apperrors.NewStore("review.updateMediaURLs", fmt.Sprintf("id=%d", id), err)
	}
	return nil
}

// RatingStats computes the mean rating over every review of the
// association, straight from the source rows.
func (r *reviewRepository) RatingStats(shopDrinkID uint) (float64, int64, error) {
	var count int64
	if err := r.db.Model(&model.Review{}).Where("shop_drink_id = ?", shopDrinkID).Count(&count).Error; err != nil {
		return 0, 0, apperrors.NewStore("review.ratingStats", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := r.db.Model(&model.Review{}).
		Where("shop_drink_id = ?", shopDrinkID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, 0, apperrors.NewStore("review.ratingStats", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}
	return avg, count, nil
}
