package aboutstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dalemusser/ngohub/internal/app/system/txn"
)

// Default content inserted into empty tables.
var (
	DefaultStory      = "We are a non-profit organization working for social development."
	DefaultCoreValues = []string{"Transparency", "Empathy", "Community Service"}
	DefaultPrograms   = []string{"Child Education", "Free Medical Checkups", "Skill Development"}
	DefaultImpact     = []string{"5,000+ lives impacted", "50+ active volunteers"}
	DefaultTeam       = [][2]string{{"Amit Kulkarni", "Director"}, {"Pooja Deshmukh", "Manager"}}
)

// Seed fills each About table with defaults when that table is empty.
// Tables that already have rows are left alone.
func (s *Store) Seed(ctx context.Context) error {
	return txn.Run(ctx, s.db, func(tx *sql.Tx) error {
		if err := seedIfEmpty(ctx, tx, "story", func() error {
			_, err := tx.ExecContext(ctx, `INSERT INTO story (text) VALUES (?)`, DefaultStory)
			return err
		}); err != nil {
			return err
		}

		lists := []struct {
			l     List
			items []string
		}{
			{CoreValues, DefaultCoreValues},
			{Programs, DefaultPrograms},
			{Impact, DefaultImpact},
		}
		for _, li := range lists {
			li := li
			if err := seedIfEmpty(ctx, tx, li.l.table, func() error {
				q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`, li.l.table, li.l.column)
				for _, it := range li.items {
					if _, err := tx.ExecContext(ctx, q, it); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
		}

		return seedIfEmpty(ctx, tx, "team", func() error {
			for _, m := range DefaultTeam {
				if _, err := tx.ExecContext(ctx, `INSERT INTO team (name, role) VALUES (?, ?)`, m[0], m[1]); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func seedIfEmpty(ctx context.Context, tx *sql.Tx, table string, insert func() error) error {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	if err := insert(); err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
