// Package source provides the fetch implementations that produce tour-date
// records from the remote listing.
//
// Two interchangeable sources exist: an HTML scraper for the rendered tour
// page (the embedded ticketing widget) and a client for a JSON feed of the
// same shows. The variant is fixed at configuration time; both return the
// same normalized record shape, so nothing downstream knows which one ran.
package source
