package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	apperrors "github.com/Cup-Trail/cup-trail-sub000/internal/errors"
	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
)

func setupShopServiceTest(t *testing.T) ShopService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewShopService(repository.NewShopRepository(testDB))
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestShopService_ResolveShopRequiresName(t *testing.T) {
	shopService := setupShopServiceTest(t)

	_, err := shopService.ResolveShop(ResolveShopInput{Name: "   ", Address: "1 Main St"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestShopService_ResolveShopDeduplicates(t *testing.T) {
	shopService := setupShopServiceTest(t)

	first, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Café Lúna",
		Address: "123 Main St",
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	// Same place, different casing and no diacritics.
	variants := []ResolveShopInput{
		{Name: "cafe luna", Address: "123 MAIN ST"},
		{Name: "Cafe  Luna!", Address: "123, Main St."},
	}
	for _, input := range variants {
		got, err := shopService.ResolveShop(input)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	}

	shops, err := shopService.ListShops(ListShopsInput{})
	require.NoError(t, err)
	assert.Len(t, shops, 1)
}

func TestShopService_ResolveShopPlaceIDWins(t *testing.T) {
	shopService := setupShopServiceTest(t)

	first, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Boba & Co",
		Address: "49 2nd Ave",
		PlaceID: "place-abc",
	})
	require.NoError(t, err)

	// A rename at the same place still resolves via the place id.
	renamed, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Boba Brothers",
		Address: "49 Second Avenue",
		PlaceID: "place-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, renamed.ID)
}

func TestShopService_ResolveShopBackfillsPlaceID(t *testing.T) {
	shopService := setupShopServiceTest(t)

	first, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Tea Corner",
		Address: "1 Oak Rd",
	})
	require.NoError(t, err)
	require.Nil(t, first.PlaceID)

	// Later submission knows the place id; the existing row adopts it.
	second, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Tea Corner",
		Address: "1 Oak Rd",
		PlaceID: "place-tc",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.PlaceID)
	assert.Equal(t, "place-tc", *second.PlaceID)

	// And from now on the place id resolves directly.
	third, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Totally Different Name",
		Address: "Somewhere Else",
		PlaceID: "place-tc",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
}

func TestShopService_ResolveShopRepeatsYieldOneRow(t *testing.T) {
	shopService := setupShopServiceTest(t)

	for i := 0; i < 10; i++ {
		_, err := shopService.ResolveShop(ResolveShopInput{
			Name:    "Slush Stop",
			Address: "9 Elm St",
			PlaceID: "place-slush",
		})
		require.NoError(t, err)
	}

	shops, err := shopService.ListShops(ListShopsInput{})
	require.NoError(t, err)
	assert.Len(t, shops, 1)
}

func TestShopService_ConcurrentResolveShopYieldsOneRow(t *testing.T) {
	testDB, err := db.SetupTestDBFile(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	shopService := NewShopService(repository.NewShopRepository(testDB))

	const callers = 16
	var wg sync.WaitGroup
	ids := make([]uint, callers)
	errs := make([]error, callers)
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			shop, err := shopService.ResolveShop(ResolveShopInput{
				Name:    "Race Cafe",
				Address: "1 Derby Ln",
			})
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = shop.ID
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, testDB.Model(&model.Shop{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// failingPlaceUpsertRepo simulates a store that cannot complete the
// place-id upsert, forcing resolution onto the canonical-key path.
type failingPlaceUpsertRepo struct {
	repository.ShopRepository
}

func (r *failingPlaceUpsertRepo) UpsertByPlaceID(shop *model.Shop) (*model.Shop, error) {
	return nil, errors.New("connection refused")
}

func TestShopService_ResolveShopSurvivesPlaceIDUpsertFailure(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	shopService := NewShopService(&failingPlaceUpsertRepo{
		ShopRepository: repository.NewShopRepository(testDB),
	})

	first, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Fallback Cafe",
		Address: "2 Side St",
		PlaceID: "place-fb",
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	// The canonical-key upsert stored the place id, so the retry resolves
	// the same row directly by place id.
	second, err := shopService.ResolveShop(ResolveShopInput{
		Name:    "Fallback Cafe",
		Address: "2 Side St",
		PlaceID: "place-fb",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.PlaceID)
	assert.Equal(t, "place-fb", *second.PlaceID)
}

func TestShopService_ListShopsNearSortsByDistance(t *testing.T) {
	shopService := setupShopServiceTest(t)

	_, err := shopService.ResolveShop(ResolveShopInput{
		Name: "Far Cafe", Address: "far",
		Latitude: floatPtr(37.80), Longitude: floatPtr(-122.50),
	})
	require.NoError(t, err)
	_, err = shopService.ResolveShop(ResolveShopInput{
		Name: "Near Cafe", Address: "near",
		Latitude: floatPtr(37.776), Longitude: floatPtr(-122.42),
	})
	require.NoError(t, err)
	_, err = shopService.ResolveShop(ResolveShopInput{
		Name: "No Coords Cafe", Address: "unknown",
	})
	require.NoError(t, err)

	shops, err := shopService.ListShops(ListShopsInput{
		Near: &Coordinates{Latitude: 37.7749, Longitude: -122.4194},
	})
	require.NoError(t, err)
	require.Len(t, shops, 3)
	assert.Equal(t, "Near Cafe", shops[0].Name)
	assert.Equal(t, "Far Cafe", shops[1].Name)
	assert.Equal(t, "No Coords Cafe", shops[2].Name)
}

func TestShopService_ArchiveShop(t *testing.T) {
	shopService := setupShopServiceTest(t)

	shop, err := shopService.ResolveShop(ResolveShopInput{
		Name: "Closing Soon", Address: "5 End St",
	})
	require.NoError(t, err)

	require.NoError(t, shopService.ArchiveShop(shop.ID))

	// Archived shops stay readable by id.
	got, err := shopService.GetShopByID(shop.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)

	// But drop out of the default listing.
	shops, err := shopService.ListShops(ListShopsInput{})
	require.NoError(t, err)
	assert.Len(t, shops, 0)

	assert.ErrorIs(t, shopService.ArchiveShop(99999), ErrShopNotFound)
}
