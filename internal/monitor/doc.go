// Package monitor orchestrates the check workflow: fetch the listing,
// reconcile it against the store, persist anything new, then announce it.
//
// A single mutex serializes runs. Scheduled ticks wait their turn; manual
// triggers (slash commands, the HTTP API) use TryRunCheck and report busy
// instead of piling up. The last run's result is process-scoped state,
// empty until the first run completes, and feeds the status surfaces.
package monitor
