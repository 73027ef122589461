package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
)

func setupDrinkRepositoryTest(t *testing.T) DrinkRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewDrinkRepository(testDB)
}

func TestDrinkRepository_GetOrCreate(t *testing.T) {
	repo := setupDrinkRepositoryTest(t)

	first, err := repo.GetOrCreate("Brown Sugar Boba")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotZero(t, first.ID)

	// Repeats land on the same row.
	second, err := repo.GetOrCreate("Brown Sugar Boba")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Names are case-sensitive: a different casing is a different drink.
	other, err := repo.GetOrCreate("brown sugar boba")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestDrinkRepository_FindByName(t *testing.T) {
	repo := setupDrinkRepositoryTest(t)

	created, err := repo.GetOrCreate("Jasmine Green Tea")
	require.NoError(t, err)

	found, err := repo.FindByName("Jasmine Green Tea")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.FindByName("Oolong Latte")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
