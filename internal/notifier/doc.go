// Package notifier provides announcement delivery for new tour dates.
//
// The notifier package supports posting announcements to Discord and
// mirroring them to Twitter, plus a dry-run variant that prints what would
// be sent. Notifiers deliver one event at a time so a failed delivery never
// blocks the rest of a batch.
package notifier
