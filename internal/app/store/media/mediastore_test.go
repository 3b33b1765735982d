package mediastore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mediastore "github.com/dalemusser/ngohub/internal/app/store/media"
	"github.com/dalemusser/ngohub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPressReleases_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err := store.AddPressRelease(ctx, "Old", "older news", date("2023-05-01"))
	require.NoError(t, err)
	newID, err := store.AddPressRelease(ctx, "New", "newer news", date("2024-02-10"))
	require.NoError(t, err)
	_, err = store.AddPressRelease(ctx, "Middle", "middle news", date("2023-11-20"))
	require.NoError(t, err)

	list, err := store.PressReleases(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "New", list[0].Title)
	assert.Equal(t, "2024-02-10", list[0].DateLabel())
	assert.Equal(t, "Middle", list[1].Title)
	assert.Equal(t, "Old", list[2].Title)

	require.NoError(t, store.DeletePressRelease(ctx, newID))
	assert.ErrorIs(t, store.DeletePressRelease(ctx, newID), mediastore.ErrNotFound)

	_, err = store.AddPressRelease(ctx, "", "x", date("2024-01-01"))
	assert.ErrorIs(t, err, mediastore.ErrEmpty)
}

func TestCoverage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	id, err := store.AddCoverage(ctx, "Local paper feature", "https://news.example.org/ngo")
	require.NoError(t, err)

	list, err := store.Coverage(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://news.example.org/ngo", list[0].URL)

	_, err = store.AddCoverage(ctx, "No URL", " ")
	assert.ErrorIs(t, err, mediastore.ErrEmpty)

	require.NoError(t, store.DeleteCoverage(ctx, id))
	list, err = store.Coverage(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGallery_DeleteReturnsPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	id, err := store.AddGalleryImage(ctx, "gallery/2024/01/abcd1234-camp.png")
	require.NoError(t, err)

	imgs, err := store.Gallery(ctx)
	require.NoError(t, err)
	require.Len(t, imgs, 1)

	path, err := store.DeleteGalleryImage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "gallery/2024/01/abcd1234-camp.png", path)

	_, err = store.DeleteGalleryImage(ctx, id)
	assert.ErrorIs(t, err, mediastore.ErrNotFound)
}

func TestVideos_AndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	id, err := store.AddVideo(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	_, err = store.AddVideo(ctx, "")
	assert.ErrorIs(t, err, mediastore.ErrEmpty)

	vids, err := store.Videos(ctx)
	require.NoError(t, err)
	require.Len(t, vids, 1)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["videos"])
	assert.Equal(t, 0, counts["press_releases"])

	require.NoError(t, store.DeleteVideo(ctx, id))
	assert.ErrorIs(t, store.DeleteVideo(ctx, id), mediastore.ErrNotFound)
}

func TestPressReleases_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, description, release_date FROM press_releases").
		WillReturnError(errors.New("no such table"))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err = mediastore.New(db).PressReleases(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list press releases")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVideo_RowsAffectedError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM videos").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver cannot report rows")))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	err = mediastore.New(db).DeleteVideo(ctx, 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, mediastore.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
