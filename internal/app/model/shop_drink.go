package model

import "time"

// ShopDrink is the association "this drink as served at this shop".
// AvgRating and CoverPhotoURL are derived: only the aggregate recomputer
// and the cover photo selector write them, never a client.
type ShopDrink struct {
	ID      uint  `gorm:"primarykey" json:"id"`
	ShopID  uint  `gorm:"not null;index:idx_shop_drink,unique" json:"shop_id"`
	Shop    Shop  `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	DrinkID uint  `gorm:"not null;index:idx_shop_drink,unique" json:"drink_id"`
	Drink   Drink `gorm:"foreignKey:DrinkID" json:"drink,omitempty"`

	Price         *float64 `json:"price,omitempty"`
	AvgRating     float64  `gorm:"not null;default:0" json:"avg_rating"`
	CoverPhotoURL string   `json:"cover_photo_url,omitempty"`

	Categories []Category `gorm:"many2many:shop_drink_categories;" json:"categories,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:ShopDrinkID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShopDrink) TableName() string {
	return "shop_drinks"
}
