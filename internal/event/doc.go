// Package event provides the tour-date record type, its identity rules, and
// the reconciliation core.
//
// Each event is identified by the opaque ID its source supplies when one
// exists, falling back to venue plus calendar day in a fixed reference
// timezone. Reconcile computes which freshly fetched events are not yet
// known; running it against an unchanged source yields nothing new, which is
// what keeps repeated checks from announcing the same show twice.
package event
