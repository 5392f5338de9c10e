// Package domain holds the core data model shared by every engine and
// adapter: scenes and products (the immutable reference data), the mutable
// per-conversation Session, durable Orders, and the Outcome returned by a
// transition. It has no dependencies on the rest of the module.
package domain
