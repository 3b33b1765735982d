// internal/app/store/home/homestore.go
package homestore

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
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("home: not found")
	// ErrEmpty is returned when a required field is blank.
	ErrEmpty = errors.New("home: required field is empty")
)

// Default content inserted into empty tables.
var (
	DefaultProfile = models.HomeProfile{
		Vision:  "Empowering lives through compassion.",
		Mission: "Education, healthcare, and social welfare.",
	}
	DefaultStats = []models.Stat{
		{Label: "Children Helped", Value: "1200+"},
		{Label: "Active Volunteers", Value: "300+"},
		{Label: "Ongoing Projects", Value: "45+"},
	}
	DefaultInitiatives = []string{"Free Education Program", "Women Empowerment", "Rural Health Support"}
)

// Store provides access to the home page tables.
type Store struct {
	db *sql.DB
}

// New creates a new home store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Profile returns the vision and mission. Missing rows yield a zero value.
func (s *Store) Profile(ctx context.Context) (models.HomeProfile, error) {
	var p models.HomeProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT vision, mission FROM home_profile WHERE id = 1`).Scan(&p.Vision, &p.Mission)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HomeProfile{}, nil
	}
	if err != nil {
		return models.HomeProfile{}, fmt.Errorf("load home profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes both statements.
func (s *Store) SaveProfile(ctx context.Context, p models.HomeProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO home_profile (id, vision, mission) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET vision = excluded.vision, mission = excluded.mission`,
		strings.TrimSpace(p.Vision), strings.TrimSpace(p.Mission))
	if err != nil {
		return fmt.Errorf("save home profile: %w", err)
	}
	return nil
}

// Stats returns statistics in the order they were first added.
func (s *Store) Stats(ctx context.Context) ([]models.Stat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, value FROM home_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var out []models.Stat
	for rows.Next() {
		var st models.Stat
		if err := rows.Scan(&st.ID, &st.Label, &st.Value); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// SaveStat adds a statistic or, when label already exists, replaces its value.
func (s *Store) SaveStat(ctx context.Context, label, value string) error {
	label, value = strings.TrimSpace(label), strings.TrimSpace(value)
	if label == "" || value == "" {
		return ErrEmpty
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO home_stats (label, value) VALUES (?, ?)
		 ON CONFLICT(label) DO UPDATE SET value = excluded.value`, label, value)
	if err != nil {
		return fmt.Errorf("save stat %q: %w", label, err)
	}
	return nil
}

// DeleteStat removes a statistic.
func (s *Store) DeleteStat(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "home_stats", id)
}

// Initiatives returns initiatives in insertion order.
func (s *Store) Initiatives(ctx context.Context) ([]models.ListItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM initiatives ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	defer rows.Close()

	var out []models.ListItem
	for rows.Next() {
		var it models.ListItem
		if err := rows.Scan(&it.ID, &it.Text); err != nil {
			return nil, fmt.Errorf("scan initiative: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddInitiative appends an initiative.
func (s *Store) AddInitiative(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO initiatives (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert initiative: %w", err)
	}
	return res.LastInsertId()
}

// DeleteInitiative removes an initiative.
func (s *Store) DeleteInitiative(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "initiatives", id)
}

// Seed fills the profile, stats and initiatives with defaults when each is empty.
func (s *Store) Seed(ctx context.Context) error {
	return txn.Run(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO home_profile (id, vision, mission) VALUES (1, ?, ?)`,
			DefaultProfile.Vision, DefaultProfile.Mission); err != nil {
			return fmt.Errorf("seed home_profile: %w", err)
		}

		if empty, err := isEmpty(ctx, tx, "home_stats"); err != nil {
			return err
		} else if empty {
			for _, st := range DefaultStats {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO home_stats (label, value) VALUES (?, ?)`, st.Label, st.Value); err != nil {
					return fmt.Errorf("seed home_stats: %w", err)
				}
			}
		}

		if empty, err := isEmpty(ctx, tx, "initiatives"); err != nil {
			return err
		} else if empty {
			for _, name := range DefaultInitiatives {
				if _, err := tx.ExecContext(ctx, `INSERT INTO initiatives (name) VALUES (?)`, name); err != nil {
					return fmt.Errorf("seed initiatives: %w", err)
				}
			}
		}
		return nil
	})
}

// Counts returns the number of stats and initiatives.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, 2)
	for _, table := range []string{"home_stats", "initiatives"} {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

func isEmpty(ctx context.Context, tx *sql.Tx, table string) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return n == 0, nil
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
