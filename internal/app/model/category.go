package model

import "time"

// Category is a small administered lookup set of drink category tags.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Slug      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// ShopDrinkCategory joins shop-drinks to categories. Rows have no
// independent lifecycle: AssignCategories replaces them wholesale.
type ShopDrinkCategory struct {
	ShopDrinkID uint      `gorm:"primaryKey;index" json:"shop_drink_id"`
	CategoryID  uint      `gorm:"primaryKey;index" json:"category_id"`
	ShopDrink   ShopDrink `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Category    Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ShopDrinkCategory) TableName() string {
	return "shop_drink_categories"
}
