// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/ngohub/internal/app/system/txn"
	"github.com/dalemusser/ngohub/internal/domain/models"
)

var (
	// ErrNotFound is returned when a project or image does not exist.
	ErrNotFound = errors.New("projects: not found")
	// ErrInvalidStatus is returned for a status outside models.ProjectStatuses.
	ErrInvalidStatus = errors.New("projects: invalid status")
	// ErrEmptyTitle is returned when a project has no title.
	ErrEmptyTitle = errors.New("projects: title is empty")
)

// Store provides access to the projects and project_images tables.
type Store struct {
	db *sql.DB
}

// New creates a new project store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const projectCols = `id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(status, ''),
	COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(location, '')`

// List returns projects matching filter (a status or models.StatusAll),
// each with its images, in creation order.
func (s *Store) List(ctx context.Context, filter string) ([]models.Project, error) {
	filter = models.NormalizeProjectFilter(filter)

	query := `SELECT ` + projectCols + ` FROM projects`
	var args []any
	if filter != models.StatusAll {
		query += ` WHERE status = ?`
		args = append(args, filter)
	}
	query += ` ORDER BY id`

	projects, err := s.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Get returns one project with its images.
func (s *Store) Get(ctx context.Context, id int64) (models.Project, error) {
	projects, err := s.queryProjects(ctx, `SELECT `+projectCols+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return models.Project{}, err
	}
	if len(projects) == 0 {
		return models.Project{}, ErrNotFound
	}
	if err := s.attachImages(ctx, projects); err != nil {
		return models.Project{}, err
	}
	return projects[0], nil
}

// Create inserts p and returns its id. Status must be one of
// models.ProjectStatuses (any case).
func (s *Store) Create(ctx context.Context, p models.Project) (int64, error) {
	p, err := clean(p)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (title, description, status, start_date, end_date, location)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Location)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return res.LastInsertId()
}

// Update overwrites the fields of project p.ID.
func (s *Store) Update(ctx context.Context, p models.Project) error {
	p, err := clean(p)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, status = ?, start_date = ?, end_date = ?, location = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Location, p.ID)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project and, through the foreign key cascade, its image
// rows. It returns the image paths so the caller can remove the files.
func (s *Store) Delete(ctx context.Context, id int64) ([]string, error) {
	var paths []string
	err := txn.Run(ctx, s.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT COALESCE(image_path, '') FROM project_images WHERE project_id = ? ORDER BY id`, id)
		if err != nil {
			return fmt.Errorf("list project images: %w", err)
		}
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return fmt.Errorf("scan project image: %w", err)
			}
			if p != "" {
				paths = append(paths, p)
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// AddImage records an image path for a project.
func (s *Store) AddImage(ctx context.Context, projectID int64, path string) (int64, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, projectID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("check project %d: %w", projectID, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO project_images (project_id, image_path) VALUES (?, ?)`, projectID, path)
	if err != nil {
		return 0, fmt.Errorf("insert project image: %w", err)
	}
	return res.LastInsertId()
}

// DeleteImage removes one image row and returns its path.
func (s *Store) DeleteImage(ctx context.Context, id int64) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM project_images WHERE id = ? RETURNING COALESCE(image_path, '')`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete project image %d: %w", id, err)
	}
	return path, nil
}

// ImagePaths returns the stored path of every project image.
func (s *Store) ImagePaths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT COALESCE(image_path, '') FROM project_images`)
	if err != nil {
		return nil, fmt.Errorf("list project image paths: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan project image path: %w", err)
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out, rows.Err()
}

// Counts returns the number of projects per status plus the image count.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	rows, err := s.db.QueryContext(ctx, `SELECT COALESCE(status, ''), COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	total := 0
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan project count: %w", err)
		}
		if status != "" {
			out[status] = n
		}
		total += n
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	out["projects"] = total

	var images int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_images`).Scan(&images); err != nil {
		return nil, fmt.Errorf("count project images: %w", err)
	}
	out["project_images"] = images
	return out, nil
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.Location); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// attachImages loads the images of projects in one query. It runs after the
// project rows are closed so a single-connection pool is never held twice.
func (s *Store) attachImages(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	idx := make(map[int64]int, len(projects))
	placeholders := make([]string, 0, len(projects))
	args := make([]any, 0, len(projects))
	for i, p := range projects {
		idx[p.ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, COALESCE(image_path, '') FROM project_images
		 WHERE project_id IN (`+strings.Join(placeholders, ",")+`) ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.ImagePath); err != nil {
			return fmt.Errorf("scan project image: %w", err)
		}
		if i, ok := idx[img.ProjectID]; ok {
			projects[i].Images = append(projects[i].Images, img)
		}
	}
	return rows.Err()
}

func clean(p models.Project) (models.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return p, ErrEmptyTitle
	}
	st := models.NormalizeProjectStatus(p.Status)
	if st == "" {
		return p, ErrInvalidStatus
	}
	p.Status = st
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.EndDate = strings.TrimSpace(p.EndDate)
	return p, nil
}
