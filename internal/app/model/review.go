package model

import "time"

// Review is an individual rating of a shop-drink. Rows are append-only;
// the only mutation is the media URL backfill after asynchronous upload.
type Review struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ShopDrinkID uint      `gorm:"not null;index" json:"shop_drink_id"`
	ShopDrink   ShopDrink `gorm:"foreignKey:ShopDrinkID" json:"-"`

	UserID    *uint       `gorm:"index" json:"user_id,omitempty"`
	Rating    float64     `gorm:"not null" json:"rating"` // 0.0 - 5.0
	Comment   string      `gorm:"type:text;not null" json:"comment"`
	MediaURLs StringArray `gorm:"type:text" json:"media_urls,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
