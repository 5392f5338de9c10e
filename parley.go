package parley

import (
	"fmt"
	"log/slog"

	"parley/internal/logging"
	"parley/pkg/adapters/file"
	"parley/pkg/adapters/memory"
	"parley/pkg/catalog"
	"parley/pkg/gamemaster"
	"parley/pkg/ports"
	"parley/pkg/session"
	"parley/pkg/storefront"
	"parley/pkg/world"
)

// Version is the released version of the parley module.
var Version = "0.3.0"

// App bundles the wired engines and the session manager. It is the
// high-level entry point for hosts embedding parley as a library.
type App struct {
	GameMaster *gamemaster.Engine
	Storefront *storefront.Engine
	Sessions   *session.Manager

	worldPath   string
	catalogPath string
	ledgerPath  string
	store       ports.SessionStore
	ledger      ports.OrderLedger
	logger      *slog.Logger
}

// Option configures the App.
type Option func(*App)

// WithWorldFile loads the adventure world from a YAML file instead of the
// embedded default.
func WithWorldFile(path string) Option {
	return func(a *App) {
		a.worldPath = path
	}
}

// WithCatalogFile loads the product catalog from a YAML file instead of
// the embedded default.
func WithCatalogFile(path string) Option {
	return func(a *App) {
		a.catalogPath = path
	}
}

// WithLedgerFile sets the order ledger file path.
func WithLedgerFile(path string) Option {
	return func(a *App) {
		a.ledgerPath = path
	}
}

// WithStore injects a session store, replacing the default in-memory one.
func WithStore(store ports.SessionStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithLedger injects an order ledger, replacing the default file-backed one.
func WithLedger(ledger ports.OrderLedger) Option {
	return func(a *App) {
		a.ledger = ledger
	}
}

// WithLogger sets the structured logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New wires a complete application: world, catalog, session manager and
// both engines. Defaults to the embedded data, an in-memory session store
// and a file ledger under .parley/.
func New(opts ...Option) (*App, error) {
	a := &App{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	w := world.Default()
	if a.worldPath != "" {
		var err error
		w, err = world.LoadFile(a.worldPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load world: %w", err)
		}
	}

	c := catalog.Default()
	if a.catalogPath != "" {
		var err error
		c, err = catalog.LoadFile(a.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.ledger == nil {
		a.ledger = file.NewLedger(a.ledgerPath, file.WithLogger(a.logger))
	}

	a.GameMaster = gamemaster.New(w, gamemaster.WithLogger(a.logger))
	a.Storefront = storefront.New(c, a.ledger, storefront.WithLogger(a.logger))
	a.Sessions = session.NewManager(a.store, session.WithLogger(a.logger))

	return a, nil
}
