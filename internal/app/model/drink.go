package model

import "time"

// Drink is a free-typed drink name, created lazily on first review.
// Name matching is exact and case-sensitive as stored; no normalization
// is applied, so "Latte" and "latte" are distinct rows.
type Drink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Drink) TableName() string {
	return "drinks"
}
