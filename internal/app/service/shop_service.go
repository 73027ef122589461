package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/util"
)

var (
	ErrShopNotFound = errors.New("shop not found")
)

// ResolveShopInput carries the loosely-structured place data a client
// captured: a name and address, optional coordinates, and the external
// place id when the client picked the place from the places service.
type ResolveShopInput struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	PlaceID   string // optional
}

// ListShopsInput filters and orders the shop listing. When Near is set,
// shops with coordinates come first, closest to farthest.
type ListShopsInput struct {
	Search          string
	IncludeArchived bool
	Near            *Coordinates
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type ShopService interface {
	ResolveShop(input ResolveShopInput) (*model.Shop, error)
	GetShopByID(id uint) (*model.Shop, error)
	ListShops(input ListShopsInput) ([]model.Shop, error)
	ArchiveShop(id uint) error
}

type shopService struct {
	shopRepo repository.ShopRepository
}

func NewShopService(shopRepo repository.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

// ResolveShop turns possibly-duplicate place input into the one canonical
// shop row, creating it if needed. Identity is checked in priority order:
// the external place id first (it survives renames and typos), then the
// canonical key derived from name and address. Both creation paths go
// through an atomic upsert, so concurrent callers racing on the same new
// place all land on a single row.
func (s *shopService) ResolveShop(input ResolveShopInput) (*model.Shop, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidation("name", "shop name is required")
	}

	key := util.CanonicalKey(input.Name, input.Address)

	// Step 1: the place id is the strongest identity signal.
	if input.PlaceID != "" {
		shop, err := s.shopRepo.FindByPlaceID(input.PlaceID)
		if err != nil {
			return nil, err
		}
		if shop != nil {
			return shop, nil
		}

		// Step 2: not seen yet; claim the place id atomically.
		candidate := s.buildShop(input, key)
		shop, err = s.shopRepo.UpsertByPlaceID(candidate)
		if err == nil && shop != nil {
			return shop, nil
		}
		// Likely a canonical-key collision with a row captured before the
		// place id was known; fall through to key resolution. Anything
		// other than a constraint conflict deserves a louder first record.
		fields := map[string]interface{}{
			"place_id":      input.PlaceID,
			"canonical_key": key,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		if err != nil && !isUniqueViolation(err) {
			logger.Warn("Place id upsert failed, falling back to canonical key", fields)
		} else {
			logger.Debug("Place id upsert did not land, falling back to canonical key", fields)
		}
	}

	// Step 3: resolve by the derived canonical key.
	shop, err := s.shopRepo.FindByCanonicalKey(key)
	if err != nil {
		return nil, err
	}
	if shop != nil {
		if input.PlaceID != "" && shop.PlaceID == nil {
			// Best-effort: future lookups should hit the stronger key.
			// A backfill failure never fails the resolution.
			if err := s.shopRepo.BackfillPlaceID(shop.ID, input.PlaceID); err != nil {
				logger.Warn("Failed to backfill place id on resolved shop", map[string]interface{}{
					"shop_id":  shop.ID,
					"place_id": input.PlaceID,
					"error":    err.Error(),
				})
			} else {
				placeID := input.PlaceID
				shop.PlaceID = &placeID
			}
		}
		return shop, nil
	}

	// Step 4: brand-new place; create it atomically on the canonical key.
	candidate := s.buildShop(input, key)
	shop, upsertErr := s.shopRepo.UpsertByCanonicalKey(candidate)
	if upsertErr == nil && shop != nil {
		return shop, nil
	}

	// Step 5: a concurrent caller may have won the place-id upsert after
	// our step-1 lookup missed it; check once more before surfacing the
	// store error.
	if input.PlaceID != "" {
		shop, err := s.shopRepo.FindByPlaceID(input.PlaceID)
		if err == nil && shop != nil {
			return shop, nil
		}
	}
	if upsertErr != nil {
		return nil, upsertErr
	}
	return nil, apperrors.NewStore("shop.resolve", "canonical_key="+key, errors.New("upsert returned no row"))
}

// isUniqueViolation matches the unique-constraint wording of both the
// Postgres and SQLite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func (s *shopService) buildShop(input ResolveShopInput, key string) *model.Shop {
	shop := &model.Shop{
		Name:         input.Name,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		CanonicalKey: key,
	}
	if input.PlaceID != "" {
		placeID := input.PlaceID
		shop.PlaceID = &placeID
	}
	return shop
}

func (s *shopService) GetShopByID(id uint) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

func (s *shopService) ListShops(input ListShopsInput) ([]model.Shop, error) {
	shops, err := s.shopRepo.FindAll(repository.ShopFilter{
		Search:          input.Search,
		IncludeArchived: input.IncludeArchived,
	})
	if err != nil {
		return nil, err
	}

	if input.Near != nil {
		sortByDistance(shops, *input.Near)
	}
	return shops, nil
}

// sortByDistance orders shops closest-first from the given point. Shops
// without coordinates sink to the end in their original order.
func sortByDistance(shops []model.Shop, from Coordinates) {
	sort.SliceStable(shops, func(i, j int) bool {
		di, iOK := distanceFrom(shops[i], from)
		dj, jOK := distanceFrom(shops[j], from)
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return di < dj
	})
}

func distanceFrom(shop model.Shop, from Coordinates) (float64, bool) {
	if shop.Latitude == nil || shop.Longitude == nil {
		return 0, false
	}
	return util.HaversineKm(from.Latitude, from.Longitude, *shop.Latitude, *shop.Longitude), true
}

// ArchiveShop soft-deletes: the row is flagged, never removed.
func (s *shopService) ArchiveShop(id uint) error {
	err := s.shopRepo.SetArchived(id, true)
	if err != nil {
		if apperrors.IsStore(err) {
			return err
		}
		return ErrShopNotFound
	}
	return nil
}
