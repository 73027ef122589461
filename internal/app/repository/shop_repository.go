package repository

import (
	"fmt"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopFilter struct {
	Search          string
	IncludeArchived bool
}

type ShopRepository interface {
	FindByID(id uint) (*model.Shop, error)
	FindByPlaceID(placeID string) (*model.Shop, error)
	FindByCanonicalKey(key string) (*model.Shop, error)
	UpsertByPlaceID(shop *model.Shop) (*model.Shop, error)
	UpsertByCanonicalKey(shop *model.Shop) (*model.Shop, error)
	BackfillPlaceID(id uint, placeID string) error
	FindAll(filter ShopFilter) ([]model.Shop, error)
	SetArchived(id uint, archived bool) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// FindByID returns (nil, nil) when no shop exists with the id: an absent
// row is an empty result, not an error.
func (r *shopRepository) FindByID(id uint) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.First(&shop, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("shop.findByID", fmt.Sprintf("id=%d", id), err)
	}
	return &shop, nil
}

func (r *shopRepository) FindByPlaceID(placeID string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.Where("place_id = ?", placeID).First(&shop).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("shop.findByPlaceID", "place_id="+placeID, err)
	}
	return &shop, nil
}

func (r *shopRepository) FindByCanonicalKey(key string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.Where("canonical_key = ?", key).First(&shop).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStore("shop.findByCanonicalKey", "canonical_key="+key, err)
	}
	return &shop, nil
}

// UpsertByPlaceID inserts the shop or, when a row with the same place_id
// already exists, refreshes its details. Concurrent callers racing on the
// same new place both land on the single row; the canonical-key constraint
// may still reject the insert, which the resolver handles by falling back
// to canonical-key resolution.
func (r *shopRepository) UpsertByPlaceID(shop *model.Shop) (*model.Shop, error) {
	if shop.PlaceID == nil {
		return nil, apperrors.NewStore("shop.upsertByPlaceID", "", fmt.Errorf("place_id is required"))
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "address", "latitude", "longitude", "canonical_key",
		}),
	}).Create(shop).Error
	if err != nil {
		return nil, apperrors.NewStore("shop.upsertByPlaceID", "place_id="+*shop.PlaceID, err)
	}

	// Re-read by key: on conflict the passed struct does not reliably carry
	// the winning row's id.
	return r.FindByPlaceID(*shop.PlaceID)
}

// UpsertByCanonicalKey inserts the shop or lands on the existing row with
// the same canonical key. When the caller knows a place id it is included
// in the conflict update so the stronger key is not lost to a race.
func (r *shopRepository) UpsertByCanonicalKey(shop *model.Shop) (*model.Shop, error) {
	assignments := map[string]interface{}{
		"name":      shop.Name,
		"address":   shop.Address,
		"latitude":  shop.Latitude,
		"longitude": shop.Longitude,
	}
	if shop.PlaceID != nil {
		assignments["place_id"] = *shop.PlaceID
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "canonical_key"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(shop).Error
	if err != nil {
		return nil, apperrors.NewStore("shop.upsertByCanonicalKey", "canonical_key="+shop.CanonicalKey, err)
	}

	return r.FindByCanonicalKey(shop.CanonicalKey)
}

// BackfillPlaceID sets place_id on a shop that was resolved by canonical
// key only. Guarded so an already-set place id is never overwritten.
func (r *shopRepository) BackfillPlaceID(id uint, placeID string) error {
	result := r.db.Model(&model.Shop{}).
		Where("id = ? AND place_id IS NULL", id).
		Update("place_id", placeID)
	if result.Error != nil {
		return apperrors.NewStore("shop.backfillPlaceID", fmt.Sprintf("id=%d place_id=%s", id, placeID), result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Debug("Place id backfill skipped, already set", map[string]interface{}{
			"shop_id":  id,
			"place_id": placeID,
		})
	}
	return nil
}

func (r *shopRepository) FindAll(filter ShopFilter) ([]model.Shop, error) {
	query := r.db.Model(&model.Shop{})

	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var shops []model.Shop
	if err := query.Order("name ASC").Find(&shops).Error; err != nil {
		return nil, apperrors.NewStore("shop.findAll", "search="+filter.Search, err)
	}
	return shops, nil
}

func (r *shopRepository) SetArchived(id uint, archived bool) error {
	result := r.db.Model(&model.Shop{}).Where("id = ?", id).Update("archived", archived)
	if result.Error != nil {
		return apperrors.NewStore("shop.setArchived", fmt.Sprintf("id=%d", id), result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
