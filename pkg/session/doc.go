// Package session orchestrates access to per-conversation state. Within a
// session one utterance is fully resolved, applied and rendered before the
// next is accepted; the Manager enforces that with a per-session lock while
// letting many sessions run side by side in one process.
package session
