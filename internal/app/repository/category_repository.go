package repository

import (
	"fmt"
	"strings"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListAll() ([]model.Category, error)
	FindBySlugs(slugs []string) ([]model.Category, error)
	ListForShopDrink(shopDrinkID uint) ([]model.Category, error)
	ReplaceForShopDrink(shopDrinkID uint, categoryIDs []uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.NewStore("category.listAll", "", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlugs(slugs []string) ([]model.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var categories []model.Category
	if err := r.db.Where("slug IN ?", slugs).Find(&categories).Error; err != nil {
		return nil, apperrors.NewStore("category.findBySlugs", "slugs="+strings.Join(slugs, ","), err)
	}
	return categories, nil
}

func (r *categoryRepository) ListForShopDrink(shopDrinkID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.
		Joins("JOIN shop_drink_categories ON shop_drink_categories.category_id = categories.id").
		Where("shop_drink_categories.shop_drink_id = ?", shopDrinkID).
		Order("categories.sort_order ASC").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.NewStore("category.listForShopDrink", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}
	return categories, nil
}

// ReplaceForShopDrink swaps the full tag set in one transaction: delete
// everything, insert the new rows. An empty id list clears all tags.
func (r *categoryRepository) ReplaceForShopDrink(shopDrinkID uint, categoryIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_drink_id = ?", shopDrinkID).
			Delete(&model.ShopDrinkCategory{}).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			link := model.ShopDrinkCategory{
				ShopDrinkID: shopDrinkID,
				CategoryID:  categoryID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewStore("category.replaceForShopDrink", fmt.Sprintf("shop_drink_id=%d", shopDrinkID), err)
	}
	return nil
}
