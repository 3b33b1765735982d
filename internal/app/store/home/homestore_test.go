package homestore_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	homestore "github.com/dalemusser/ngohub/internal/app/store/home"
	"github.com/dalemusser/ngohub/internal/domain/models"
	"github.com/dalemusser/ngohub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_SaveAndLoad(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := homestore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	p, err := store.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HomeProfile{}, p)

	require.NoError(t, store.SaveProfile(ctx, models.HomeProfile{Vision: "V1", Mission: "M1"}))
	require.NoError(t, store.SaveProfile(ctx, models.HomeProfile{Vision: " V2 ", Mission: "M2"}))

	p, err = store.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HomeProfile{Vision: "V2", Mission: "M2"}, p)
	assert.Equal(t, 1, testutil.CountRows(t, db, "home_profile"))
}

func TestSaveStat_UpsertsByLabel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := homestore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	require.NoError(t, store.SaveStat(ctx, "Children Helped", "1200+"))
	require.NoError(t, store.SaveStat(ctx, "Meals Served", "10k"))
	require.NoError(t, store.SaveStat(ctx, "Children Helped", "1500+"))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Children Helped", stats[0].Label)
	assert.Equal(t, "1500+", stats[0].Value)
	assert.Equal(t, "Meals Served", stats[1].Label)

	assert.ErrorIs(t, store.SaveStat(ctx, "Label", ""), homestore.ErrEmpty)
	assert.ErrorIs(t, store.SaveStat(ctx, "", "1"), homestore.ErrEmpty)

	require.NoError(t, store.DeleteStat(ctx, stats[1].ID))
	assert.ErrorIs(t, store.DeleteStat(ctx, stats[1].ID), homestore.ErrNotFound)
}

func TestInitiatives(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := homestore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	id, err := store.AddInitiative(ctx, "Clean Water")
	require.NoError(t, err)
	_, err = store.AddInitiative(ctx, "  ")
	assert.ErrorIs(t, err, homestore.ErrEmpty)

	list, err := store.Initiatives(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Clean Water", list[0].Text)

	require.NoError(t, store.DeleteInitiative(ctx, id))
	assert.ErrorIs(t, store.DeleteInitiative(ctx, id), homestore.ErrNotFound)
}

func TestSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := homestore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	require.NoError(t, store.SaveProfile(ctx, models.HomeProfile{Vision: "Custom", Mission: "Mine"}))
	require.NoError(t, store.Seed(ctx))
	require.NoError(t, store.Seed(ctx))

	p, err := store.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Custom", p.Vision, "existing profile must not be overwritten")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "Ongoing Projects", stats[2].Label)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"home_stats": 3, "initiatives": 3}, counts)
}

func TestSaveProfile_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO home_profile").WillReturnError(errors.New("readonly database"))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	err = homestore.New(db).SaveProfile(ctx, models.HomeProfile{Vision: "v", Mission: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save home profile")
	assert.NoError(t, mock.ExpectationsWereMet())
}
