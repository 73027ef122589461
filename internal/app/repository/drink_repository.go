package repository

import (
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DrinkRepository interface {
	FindByName(name string) (*model.Drink, error)
	GetOrCreate(name string) (*model.Drink, error)
}

type drinkRepository struct {
	db *gorm.DB
}

func NewDrinkRepository(db *gorm.DB) DrinkRepository {
	return &drinkRepository{db: db}
}

func (r *drinkRepository) FindByName(name string) (*model.Drink, error) {
	var drink model.Drink
	err := r.db.Where("name = ?", name).First(&drink).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("drink.findByName", "name="+name, err)
	}
	return &drink, nil
}

// GetOrCreate resolves a drink by exact, case-sensitive name, creating it
// atomically on first use. DO NOTHING on conflict makes concurrent first
// reviews of the same drink land on a single row without a retry loop.
func (r *drinkRepository) GetOrCreate(name string) (*model.Drink, error) {
	drink := model.Drink{Name: name}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&drink).Error
	if err != nil {
		return nil, apperrors.NewStore("drink.getOrCreate", "name="+name, err)
	}

	// On conflict the insert is a no-op and the struct has no id; read the
	// winning row either way.
	var out model.Drink
	if err := r.db.Where("name = ?", name).First(&out).Error; err != nil {
		return nil, apperrors.NewStore("drink.getOrCreate", "name="+name, err)
	}
	return &out, nil
}
