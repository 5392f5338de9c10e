// Package resolve maps free spoken text onto a finite candidate set using
// an ordered cascade of matching strategies: first stage to produce a hit
// wins, and every comparison is case-insensitive. Given identical text and
// candidate ordering the result is always the same: this is deterministic
// rule ranking, not language understanding.
package resolve
