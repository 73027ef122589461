package repository

import (
	"fmt"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopDrinkRepository interface {
	FindByID(id uint) (*model.ShopDrink, error)
	FindByPair(shopID, drinkID uint) (*model.ShopDrink, error)
	GetOrCreate(shopID, drinkID uint, price *float64) (*model.ShopDrink, error)
	ListByShop(shopID uint) ([]model.ShopDrink, error)
	ListIDs() ([]uint, error)
	UpdateAvgRating(id uint, avg float64) error
	UpdateCoverPhoto(id uint, url string) error
}

type shopDrinkRepository struct {
	db *gorm.DB
}

func NewShopDrinkRepository(db *gorm.DB) ShopDrinkRepository {
	return &shopDrinkRepository{db: db}
}

func (r *shopDrinkRepository) FindByID(id uint) (*model.ShopDrink, error) {
	var sd model.ShopDrink
	err := r.db.Preload("Drink").Preload("Categories").First(&sd, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("shopDrink.findByID", fmt.Sprintf("id=%d", id), err)
	}
	return &sd, nil
}

func (r *shopDrinkRepository) FindByPair(shopID, drinkID uint) (*model.ShopDrink, error) {
	var sd model.ShopDrink
	err := r.db.Where("shop_id = ? AND drink_id = ?", shopID, drinkID).First(&sd).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("shopDrink.findByPair", fmt.Sprintf("shop_id=%d drink_id=%d", shopID, drinkID), err)
	}
	return &sd, nil
}

// GetOrCreate resolves the (shop, drink) association, creating it
// atomically on first review. New rows start with avg_rating 0 and no
// cover photo; both are derived and recomputed later.
func (r *shopDrinkRepository) GetOrCreate(shopID, drinkID uint, price *float64) (*model.ShopDrink, error) {
	sd := model.ShopDrink{
		ShopID:  shopID,
		DrinkID: drinkID,
		Price:   price,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_id"}, {Name: "drink_id"}},
		DoNothing: true,
	}).Create(&sd).Error
	if err != nil {
		return nil, apperrors.NewStore("shopDrink.getOrCreate", fmt.Sprintf("shop_id=%d drink_id=%d", shopID, drinkID), err)
	}

	return r.FindByPair(shopID, drinkID)
}

func (r *shopDrinkRepository) ListByShop(shopID uint) ([]model.ShopDrink, error) {
	var items []model.ShopDrink
	err := r.db.Preload("Drink").Preload("Categories").
		Where("shop_id = ?", shopID).
		Order("avg_rating DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.NewStore("shopDrink.listByShop", fmt.Sprintf("shop_id=%d", shopID), err)
	}
	return items, nil
}

// ListIDs returns every association id, for the rating sweep.
func (r *shopDrinkRepository) ListIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.ShopDrink{}).Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.NewStore("shopDrink.listIDs", "", err)
	}
	return ids, nil
}

func (r *shopDrinkRepository) UpdateAvgRating(id uint, avg float64) error {
	err := r.db.Model(&model.ShopDrink{}).Where("id = ?", id).
		UpdateColumn("avg_rating", avg).Error
	if err != nil {
		return apperrors.NewStore("shopDrink.updateAvgRating", fmt.Sprintf("id=%d", id), err)
	}
	return nil
}

func (r *shopDrinkRepository) UpdateCoverPhoto(id uint, url string) error {
	err := r.db.Model(&model.ShopDrink{}).Where("id = ?", id).
		UpdateColumn("cover_photo_url", url).Error
	if err != nil {
		return apperrors.NewStore("shopDrink.updateCoverPhoto", fmt.Sprintf("id=%d", id), err)
	}
	return nil
}
