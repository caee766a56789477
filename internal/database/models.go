package database

import "time"

// InlineClick is one append-only click log record: a user chose an inline
// result, identified by the canonical URL of the catalog leaf.
type InlineClick struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ResultURL string `db:"result_url"`
	Title     string `db:"title"`
	UserID    int64  `db:"user_id"`
}

// ClickStat is an aggregated click count for one inline result.
type ClickStat struct {
	ResultURL string `db:"result_url"`
	Title     string `db:"title"`
	Count     int64  `db:"clicks"`
}
