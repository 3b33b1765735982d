package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts content rows directly, bypassing the stores.
type Fixtures struct {
	db *sql.DB
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *sql.DB {
	return f.db
}

func (f *Fixtures) insert(query string, args ...any) int64 {
	f.t.Helper()
	res, err := f.db.Exec(query, args...)
	if err != nil {
		f.t.Fatalf("fixture insert failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		f.t.Fatalf("fixture insert id: %v", err)
	}
	return id
}

// CreateProject inserts a project and returns its id.
func (f *Fixtures) CreateProject(title, status, location string) int64 {
	f.t.Helper()
	return f.insert(
		`INSERT INTO projects (title, description, status, start_date, end_date, location)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		title, title+" description", status, "2024-01-01", "2024-12-31", location)
}

// CreateProjectImage attaches an image path to a project.
func (f *Fixtures) CreateProjectImage(projectID int64, path string) int64 {
	f.t.Helper()
	return f.insert(`INSERT INTO project_images (project_id, image_path) VALUES (?, ?)`, projectID, path)
}

// CreateGalleryImage inserts a gallery row.
func (f *Fixtures) CreateGalleryImage(path string) int64 {
	f.t.Helper()
	return f.insert(`INSERT INTO image_gallery (image_path) VALUES (?)`, path)
}

// CreatePressRelease inserts a press release dated date (YYYY-MM-DD).
func (f *Fixtures) CreatePressRelease(title, date string) int64 {
	f.t.Helper()
	return f.insert(`INSERT INTO press_releases (title, description, release_date) VALUES (?, ?, ?)`,
		title, title+" details", date)
}

// CreateCoreValue inserts a core value.
func (f *Fixtures) CreateCoreValue(value string) int64 {
	f.t.Helper()
	return f.insert(`INSERT INTO core_values (value) VALUES (?)`, value)
}

// CreateStat inserts a home statistic.
func (f *Fixtures) CreateStat(label, value string) int64 {
	f.t.Helper()
	return f.insert(`INSERT INTO home_stats (label, value) VALUES (?, ?)`, label, value)
}
