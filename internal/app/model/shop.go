package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray stores a string slice as a JSON column so the same model
// works on Postgres and the sqlite test database.
type StringArray []string

// Value implements database/sql/driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements database/sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

// Shop is a canonical, deduplicated drink shop.
//
// CanonicalKey is derived from (name, address) and is always present and
// unique; PlaceID is the external places-service identifier and, when
// known, takes precedence as the identity key. Shops are never hard
// deleted; Archived is the administrative soft-delete flag.
type Shop struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Address      string   `gorm:"type:text" json:"address"`
	Latitude     *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude    *float64 `gorm:"type:decimal(11,8)" json:"longitude"`
	ImageURL     string   `json:"image_url,omitempty"`
	Archived     bool     `gorm:"default:false;index" json:"archived"`
	PlaceID      *string  `gorm:"type:varchar(255);uniqueIndex" json:"place_id,omitempty"`
	CanonicalKey string   `gorm:"type:varchar(512);uniqueIndex;not null" json:"canonical_key"`

	Drinks []ShopDrink `gorm:"foreignKey:ShopID" json:"drinks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}
