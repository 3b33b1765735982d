// internal/app/store/media/mediastore.go
package mediastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/ngohub/internal/domain/models"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("media: not found")
	// ErrEmpty is returned when a required field is blank.
	ErrEmpty = errors.New("media: required field is empty")
)

// Store provides access to the Media page tables.
type Store struct {
	db *sql.DB
}

// New creates a new media store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// PressReleases returns press releases, newest release date first.
func (s *Store) PressReleases(ctx context.Context) ([]models.PressRelease, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, release_date FROM press_releases ORDER BY release_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list press releases: %w", err)
	}
	defer rows.Close()

	var out []models.PressRelease
	for rows.Next() {
		var (
			p    models.PressRelease
			date string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &date); err != nil {
			return nil, fmt.Errorf("scan press release: %w", err)
		}
		p.ReleaseDate, _ = parseDate(date)
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddPressRelease inserts a press release. Title and description are required.
func (s *Store) AddPressRelease(ctx context.Context, title, description string, date time.Time) (int64, error) {
	title, description = strings.TrimSpace(title), strings.TrimSpace(description)
	if title == "" || description == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO press_releases (title, description, release_date) VALUES (?, ?, ?)`,
		title, description, date.Format(models.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert press release: %w", err)
	}
	return res.LastInsertId()
}

// DeletePressRelease removes a press release.
func (s *Store) DeletePressRelease(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "press_releases", id)
}

// Coverage returns media coverage links in insertion order.
func (s *Store) Coverage(ctx context.Context) ([]models.MediaCoverage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, url FROM media_coverage ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list media coverage: %w", err)
	}
	defer rows.Close()

	var out []models.MediaCoverage
	for rows.Next() {
		var c models.MediaCoverage
		if err := rows.Scan(&c.ID, &c.Title, &c.URL); err != nil {
			return nil, fmt.Errorf("scan media coverage: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddCoverage inserts a coverage link. Title and URL are required.
func (s *Store) AddCoverage(ctx context.Context, title, url string) (int64, error) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" || url == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO media_coverage (title, url) VALUES (?, ?)`, title, url)
	if err != nil {
		return 0, fmt.Errorf("insert media coverage: %w", err)
	}
	return res.LastInsertId()
}

// DeleteCoverage removes a coverage link.
func (s *Store) DeleteCoverage(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "media_coverage", id)
}

// Gallery returns gallery images in upload order.
func (s *Store) Gallery(ctx context.Context) ([]models.GalleryImage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, image_path FROM image_gallery ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer rows.Close()

	var out []models.GalleryImage
	for rows.Next() {
		var g models.GalleryImage
		if err := rows.Scan(&g.ID, &g.ImagePath); err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// AddGalleryImage records a stored image path.
func (s *Store) AddGalleryImage(ctx context.Context, path string) (int64, error) {
	if strings.TrimSpace(path) == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO image_gallery (image_path) VALUES (?)`, path)
	if err != nil {
		return 0, fmt.Errorf("insert gallery image: %w", err)
	}
	return res.LastInsertId()
}

// DeleteGalleryImage removes the row and returns its path so the caller
// can remove the file.
func (s *Store) DeleteGalleryImage(ctx context.Context, id int64) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM image_gallery WHERE id = ? RETURNING image_path`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete gallery image %d: %w", id, err)
	}
	return path, nil
}

// Videos returns video URLs in insertion order.
func (s *Store) Videos(ctx context.Context) ([]models.Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, video_url FROM videos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var out []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.VideoURL); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AddVideo inserts a video URL.
func (s *Store) AddVideo(ctx context.Context, url string) (int64, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO videos (video_url) VALUES (?)`, url)
	if err != nil {
		return 0, fmt.Errorf("insert video: %w", err)
	}
	return res.LastInsertId()
}

// DeleteVideo removes a video.
func (s *Store) DeleteVideo(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "videos", id)
}

// Counts returns the number of rows per Media table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, 4)
	for _, table := range []string{"press_releases", "media_coverage", "image_gallery", "videos"} {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// parseDate accepts the stored YYYY-MM-DD form and, for rows written by
// other tools, a leading date inside a longer timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(models.DateLayout) {
		s = s[:len(models.DateLayout)]
	}
	return time.Parse(models.DateLayout, s)
}
