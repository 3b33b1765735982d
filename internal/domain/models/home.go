// internal/domain/models/home.go
package models

// HomeProfile holds the vision and mission statements shown on the home page.
type HomeProfile struct {
	Vision  string `db:"vision"`
	Mission string `db:"mission"`
}

// Stat is an impact statistic tile, e.g. "Children Helped" / "1200+".
// Label is unique; saving an existing label replaces its value.
type Stat struct {
	ID    int64  `db:"id"`
	Label string `db:"label"`
	Value string `db:"value"`
}

// DefaultSiteName is the site name used when none is configured.
const DefaultSiteName = "Helping Hands NGO"
