// Package httpapi exposes the watcher over HTTP.
//
// The surface is read-only except for the Discord interactions webhook:
//
//	POST /interactions      Discord interaction callbacks (Ed25519 verified)
//	GET  /api/status        last run, uptime, counters, store size
//	GET  /api/events        stored events, optionally ?date=YYYY-MM-DD
//	GET  /api/calendar.ics  iCalendar feed of all stored shows
//	GET  /healthz           liveness probe
//
// The interactions route is mounted only when Discord is configured.
package httpapi
