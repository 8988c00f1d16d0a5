// filepath: internal/repository/household_repo_test.go
package repository

import (
	"testing"

	"woodbank/internal/models"
	"woodbank/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseholdCRUD(t *testing.T) {
	repo := newMigratedRepo(t, "test_household_crud.db")

	created, err := repo.CreateHousehold(&models.Household{
		Name:     "Petersen",
		Address:  "14 Birch Rd",
		City:     "Fairbanks",
		Phone:    "555-0101",
		WoodSize: "16in",
		Notes:    "gate code 4411",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetHousehold(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Petersen", got.Name)
	assert.Equal(t, "Fairbanks", got.City)
	assert.Empty(t, got.SecondaryPhone)

	got.SecondaryPhone = "555-0102"
	got.Email = "petersen@example.com"
	require.NoError(t, repo.UpdateHousehold(got))

	updated, err := repo.GetHousehold(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0102", updated.SecondaryPhone)
	assert.Equal(t, "petersen@example.com", updated.Email)

	require.NoError(t, repo.DeleteHousehold(created.ID))
	_, err = repo.GetHousehold(created.ID)
	assert.ErrorIs(t, err, shared.ErrHouseholdNotFound)
}

func TestHouseholdNotFound(t *testing.T) {
	repo := newMigratedRepo(t, "test_household_missing.db")

	_, err := repo.GetHousehold(9999)
	assert.ErrorIs(t, err, shared.ErrHouseholdNotFound)
	assert.ErrorIs(t, repo.UpdateHousehold(&models.Household{ID: 9999, Name: "x"}), shared.ErrHouseholdNotFound)
	assert.ErrorIs(t, repo.DeleteHousehold(9999), shared.ErrHouseholdNotFound)
}

func TestListHouseholds(t *testing.T) {
	repo := newMigratedRepo(t, "test_household_list.db")

	for _, h := range []models.Household{
		{Name: "Anders", City: "North Pole"},
		{Name: "Baker", City: "Fairbanks"},
		{Name: "Carver", City: "Fairbanks"},
	} {
		h := h
		_, err := repo.CreateHousehold(&h)
		require.NoError(t, err)
	}

	all, err := repo.ListHouseholds("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anders", all[0].Name, "results are ordered by name")

	t.Run("Search By City", func(t *testing.T) {
		matches, err := repo.ListHouseholds("Fairbanks")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("Search By Name", func(t *testing.T) {
		matches, err := repo.ListHouseholds("Bak")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Baker", matches[0].Name)
	})

	t.Run("No Matches", func(t *testing.T) {
		matches, err := repo.ListHouseholds("zzz")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
