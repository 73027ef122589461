package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
)

func setupShopRepositoryTest(t *testing.T) ShopRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewShopRepository(testDB)
}

func strPtr(s string) *string {
	return &s
}

func TestShopRepository_FindReturnsNilWhenMissing(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	shop, err := repo.FindByPlaceID("no-such-place")
	assert.NoError(t, err)
	assert.Nil(t, shop)

	shop, err = repo.FindByCanonicalKey("no__such_key")
	assert.NoError(t, err)
	assert.Nil(t, shop)

	shop, err = repo.FindByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, shop)
}

func TestShopRepository_UpsertByCanonicalKey(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	first, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name:         "Cafe Luna",
		Address:      "123 Main St",
		CanonicalKey: "cafe_luna__123_main_st",
	})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotZero(t, first.ID)

	// Same key again lands on the same row.
	second, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name:         "CAFE LUNA",
		Address:      "123 Main St.",
		CanonicalKey: "cafe_luna__123_main_st",
	})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	// One row total regardless of how many times the key was upserted.
	shops, err := repo.FindAll(ShopFilter{})
	require.NoError(t, err)
	count = int64(len(shops))
	assert.EqualValues(t, 1, count)
}

func TestShopRepository_UpsertByCanonicalKeyKeepsPlaceID(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	first, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name:         "Boba & Co",
		Address:      "49 2nd Ave",
		CanonicalKey: "boba_and_co__49_2nd_ave",
		PlaceID:      strPtr("place-123"),
	})
	require.NoError(t, err)
	require.NotNil(t, first.PlaceID)

	// An upsert without a place id must not clobber the stored one.
	second, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name:         "Boba and Co",
		Address:      "49 2nd Ave",
		CanonicalKey: "boba_and_co__49_2nd_ave",
	})
	require.NoError(t, err)
	require.NotNil(t, second.PlaceID)
	assert.Equal(t, "place-123", *second.PlaceID)
}

func TestShopRepository_UpsertByPlaceID(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	first, err := repo.UpsertByPlaceID(&model.Shop{
		Name:         "Matcha House",
		Address:      "7 Elm St",
		CanonicalKey: "matcha_house__7_elm_st",
		PlaceID:      strPtr("place-77"),
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := repo.UpsertByPlaceID(&model.Shop{
		Name:         "Matcha House (renamed)",
		Address:      "7 Elm Street",
		CanonicalKey: "matcha_house_renamed__7_elm_street",
		PlaceID:      strPtr("place-77"),
	})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Matcha House (renamed)", second.Name)
}

func TestShopRepository_BackfillPlaceID(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	shop, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name:         "Tea Corner",
		Address:      "1 Oak Rd",
		CanonicalKey: "tea_corner__1_oak_rd",
	})
	require.NoError(t, err)
	require.Nil(t, shop.PlaceID)

	require.NoError(t, repo.BackfillPlaceID(shop.ID, "place-900"))

	got, err := repo.FindByID(shop.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PlaceID)
	assert.Equal(t, "place-900", *got.PlaceID)

	// A second backfill with a different id is a no-op: the stored
	// place id wins.
	require.NoError(t, repo.BackfillPlaceID(shop.ID, "place-OTHER"))

	got, err = repo.FindByID(shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "place-900", *got.PlaceID)
}

func TestShopRepository_FindAllFilters(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	active, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name: "Juice Stop", Address: "2 Pine St", CanonicalKey: "juice_stop__2_pine_st",
	})
	require.NoError(t, err)
	archived, err := repo.UpsertByCanonicalKey(&model.Shop{
		Name: "Closed Cafe", Address: "3 Pine St", CanonicalKey: "closed_cafe__3_pine_st",
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetArchived(archived.ID, true))

	shops, err := repo.FindAll(ShopFilter{})
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, active.ID, shops[0].ID)

	shops, err = repo.FindAll(ShopFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, shops, 2)

	shops, err = repo.FindAll(ShopFilter{Search: "juice"})
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Juice Stop", shops[0].Name)
}

func TestShopRepository_SetArchivedMissingShop(t *testing.T) {
	repo := setupShopRepositoryTest(t)

	err := repo.SetArchived(12345, true)
	assert.Error(t, err)
}
