// Package ports defines the driven-side interfaces of the engine: where
// sessions are kept between turns and where completed orders are durably
// appended. Adapters live under pkg/adapters.
package ports
