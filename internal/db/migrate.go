package db

import (
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations and seeds the category lookup set.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Shop{},
		&model.Drink{},
		&model.ShopDrink{},
		&model.Review{},
		&model.Category{},
		&model.ShopDrinkCategory{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedCategories(DB); err != nil {
		logger.Error("Failed to seed categories during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedCategories inserts the administered category lookup set. Idempotent:
// skipped when categories already exist.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding category data...")

	categories := []model.Category{
		{Slug: "milk-tea", Label: "Milk Tea", SortOrder: 1},
		{Slug: "fruit-tea", Label: "Fruit Tea", SortOrder: 2},
		{Slug: "coffee", Label: "Coffee", SortOrder: 3},
		{Slug: "tea", Label: "Tea", SortOrder: 4},
		{Slug: "matcha", Label: "Matcha", SortOrder: 5},
		{Slug: "smoothie", Label: "Smoothie", SortOrder: 6},
		{Slug: "juice", Label: "Juice", SortOrder: 7},
		{Slug: "slush", Label: "Slush", SortOrder: 8},
	}

	for _, category := range categories {
		if err := db.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"slug": category.Slug,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(categories),
	})
	return nil
}
