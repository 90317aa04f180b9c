// Package storage provides SQLite-backed persistence for tour dates.
//
// Events live in a single table keyed by their identity hash; inserting a
// key that already exists is a no-op, so a retried batch never fails on
// rows that made it in the first time. Each row carries a day_key column
// (calendar day in the reference timezone) for date lookups. The default
// database location is ~/.local/share/tourwatch/tourwatch.db.
package storage
