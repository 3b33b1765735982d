// internal/domain/models/media.go
package models

import "time"

// PressRelease is a dated announcement on the Media page.
type PressRelease struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
}

// DateLabel formats the release date the way the Media page shows it.
func (p PressRelease) DateLabel() string {
	return p.ReleaseDate.Format(DateLayout)
}

// MediaCoverage links to an external article about the organization.
type MediaCoverage struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
	URL   string `db:"url"`
}

// GalleryImage is an uploaded image shown in the Media gallery.
// ImagePath is the storage path relative to the upload root.
type GalleryImage struct {
	ID        int64  `db:"id"`
	ImagePath string `db:"image_path"`
}

// Video is an externally hosted video (YouTube, Vimeo, or a direct file URL).
type Video struct {
	ID       int64  `db:"id"`
	VideoURL string `db:"video_url"`
}

// DateLayout is the on-disk and on-screen layout for calendar dates.
const DateLayout = "2006-01-02"
