// Package file implements the durable order ledger as a single JSON file.
// Every append reads the whole ledger, adds one record and writes the whole
// ledger back. A process-local mutex serializes writers inside one process;
// separate processes sharing the file still race last-writer-wins, which is
// the accepted limit of this store; deployments needing more should put a
// real database behind ports.OrderLedger.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"parley/internal/logging"
	"parley/pkg/domain"
)

// Ledger implements ports.OrderLedger on a single JSON file.
type Ledger struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// Option configures the Ledger.
type Option func(*Ledger)

// WithLogger configures a logger for recovery events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// NewLedger creates a ledger backed by the given file path.
// If path is empty, it defaults to ".parley/orders.json".
func NewLedger(path string, opts ...Option) *Ledger {
	if path == "" {
		path = filepath.Join(".parley", "orders.json")
	}
	l := &Ledger{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append reads the full ledger, appends one record and writes the full
// ledger back.
func (l *Ledger) Append(ctx context.Context, order domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders := l.read()
	orders = append(orders, order)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to ensure ledger directory: %w", err)
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}

	l.logger.Info("order appended", "order_id", order.ID, "total", order.Total, "count", len(orders))
	return nil
}

// ReadAll returns every order in append order.
func (l *Ledger) ReadAll(ctx context.Context) ([]domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(), nil
}

// MostRecent returns the last appended order.
func (l *Ledger) MostRecent(ctx context.Context) (domain.Order, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders := l.read()
	if len(orders) == 0 {
		return domain.Order{}, false, nil
	}
	return orders[len(orders)-1], true, nil
}

// read loads the ledger, treating a missing or corrupt file as empty.
// Read failures are recovered locally, never propagated: losing the ledger
// must not take the conversation down with it.
func (l *Ledger) read() []domain.Order {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("ledger unreadable, treating as empty", "path", l.path, "err", err)
		}
		return []domain.Order{}
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		l.logger.Warn("ledger corrupt, treating as empty", "path", l.path, "err", err)
		return []domain.Order{}
	}
	return orders
}
