package ports

import (
	"context"

	"parley/pkg/domain"
)

// OrderLedger is the process-wide, append-only collection of completed
// orders. Appending performs a whole-collection read-modify-write; records
// are never updated or deleted. A missing or unreadable backing store reads
// as an empty ledger, never as an error.
type OrderLedger interface {
	// Append adds one order to the ledger.
	Append(ctx context.Context, order domain.Order) error

	// ReadAll returns every order in append order.
	ReadAll(ctx context.Context) ([]domain.Order, error)

	// MostRecent returns the last appended order, or ok=false when the
	// ledger is empty.
	MostRecent(ctx context.Context) (domain.Order, bool, error)
}
