// Package bus is the in-process notification channel for stage-change
// events.
//
// A Bus is explicitly constructed and injected rather than reached through a
// package-level singleton; the daemon owns its lifecycle. Delivery is
// synchronous with per-listener panic isolation, the recipient set is fixed
// at the start of each publish, and an optional Sink bridges events to the
// host environment's ambient broadcast surface for consumers outside the
// bus's own registry.
package bus
