// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (boxes, bar and trend charts)
//
// Not allowed here:
// - key handling, app state transitions, or ledger and budget logic
package widgets
