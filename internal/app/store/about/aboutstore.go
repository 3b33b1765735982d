// internal/app/store/about/aboutstore.go
package aboutstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/ngohub/internal/app/system/txn"
	"github.com/dalemusser/ngohub/internal/domain/models"
)

// ErrNotFound is returned when a row to delete does not exist.
var ErrNotFound = errors.New("about: not found")

// ErrEmpty is returned when required text is blank.
var ErrEmpty = errors.New("about: text is empty")

// List identifies one of the single-column About lists.
type List struct {
	table  string
	column string
}

// The About page lists.
var (
	CoreValues = List{table: "core_values", column: "value"}
	Programs   = List{table: "programs", column: "program"}
	Impact     = List{table: "impact", column: "detail"}
)

// Name returns the table backing l.
func (l List) Name() string { return l.table }

// Store provides access to the About page tables.
type Store struct {
	db *sql.DB
}

// New creates a new about store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Story returns the current story. With no story saved it returns a zero
// Story and no error.
func (s *Store) Story(ctx context.Context) (models.Story, error) {
	var st models.Story
	err := s.db.QueryRowContext(ctx,
		`SELECT id, text FROM story ORDER BY id DESC LIMIT 1`).Scan(&st.ID, &st.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, nil
	}
	if err != nil {
		return models.Story{}, fmt.Errorf("load story: %w", err)
	}
	return st, nil
}

// SetStory replaces the story. The old row is removed and the new one
// inserted in one transaction, so readers never see zero or two stories.
func (s *Store) SetStory(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	return txn.Run(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM story`); err != nil {
			return fmt.Errorf("clear story: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO story (text) VALUES (?)`, text); err != nil {
			return fmt.Errorf("insert story: %w", err)
		}
		return nil
	})
}

// Items returns the rows of l in insertion order.
func (s *Store) Items(ctx context.Context, l List) ([]models.ListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY id`, l.column, l.table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.table, err)
	}
	defer rows.Close()

	var out []models.ListItem
	for rows.Next() {
		var it models.ListItem
		if err := rows.Scan(&it.ID, &it.Text); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.table, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddItem appends text to l and returns the new row id.
func (s *Store) AddItem(ctx context.Context, l List, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`, l.table, l.column), text)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", l.table, err)
	}
	return res.LastInsertId()
}

// DeleteItem removes one row of l.
func (s *Store) DeleteItem(ctx context.Context, l List, id int64) error {
	return deleteByID(ctx, s.db, l.table, id)
}

// Team returns the team members in insertion order.
func (s *Store) Team(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role FROM team ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	defer rows.Close()

	var out []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddTeamMember inserts a member. Both name and role are required.
func (s *Store) AddTeamMember(ctx context.Context, name, role string) (int64, error) {
	name, role = strings.TrimSpace(name), strings.TrimSpace(role)
	if name == "" || role == "" {
		return 0, ErrEmpty
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO team (name, role) VALUES (?, ?)`, name, role)
	if err != nil {
		return 0, fmt.Errorf("insert team: %w", err)
	}
	return res.LastInsertId()
}

// DeleteTeamMember removes a member.
func (s *Store) DeleteTeamMember(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "team", id)
}

// Counts returns the number of rows per About table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, 5)
	for _, table := range []string{"story", "core_values", "programs", "team", "impact"} {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

func deleteByID(ctx context.Context, db *sql.DB, table string, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
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
