// internal/domain/models/about.go
package models

// Story is the singleton "Our Story" text shown on the About page.
type Story struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
}

// ListItem is a single-column row used by the About page lists
// (core values, programs, impact) and by home initiatives.
type ListItem struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
}

// TeamMember is a person listed under "Our Team".
type TeamMember struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Role string `db:"role"`
}
