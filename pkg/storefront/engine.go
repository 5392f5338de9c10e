// Package storefront is the shopping variant of the intent engine: it
// resolves spoken product references against the catalog, manages the
// session cart, and turns completed carts into durable orders.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/logging"
	"parley/internal/metrics"
	"parley/pkg/catalog"
	"parley/pkg/domain"
	"parley/pkg/ports"
	"parley/pkg/resolve"
)

// Engine is the shopping-assistant engine. Stateless; the session carries
// all mutable state, the ledger carries the durable orders.
type Engine struct {
	catalog *catalog.Catalog
	ledger  ports.OrderLedger
	logger  *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a storefront engine over the given catalog and order ledger.
func New(c *catalog.Catalog, ledger ports.OrderLedger, opts ...Option) *Engine {
	e := &Engine{
		catalog: c,
		ledger:  ledger,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's reference data.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Start resets the session for a fresh shopping conversation.
func (e *Engine) Start(session *domain.Session, customerName string) string {
	session.Reset("")
	if customerName != "" {
		session.PlayerName = customerName
	}
	e.logger.Info("shopping session started", "session_id", session.ID, "customer", session.PlayerName)
	return ensurePrompt(greetingText(session.PlayerName))
}

// Search runs the filtered catalog query and renders up to maxResults
// matches. Never an error: an unmatched query renders as such.
func (e *Engine) Search(f catalog.Filters) string {
	return RenderResults(e.catalog.Query(f))
}

// RenderResults renders an already-executed query, for callers that also
// need the raw matches.
func RenderResults(products []domain.Product) string {
	return ensurePrompt(searchText(products))
}

// AddToCart resolves a spoken product reference and adds it to the cart.
// quantity below 1 is treated as 1. All failure paths return a speakable
// corrective outcome with the cart untouched.
func (e *Engine) AddToCart(session *domain.Session, text string, quantity int, size string) domain.Outcome {
	if quantity < 1 {
		quantity = 1
	}

	product, err := resolve.Reference(text, e.catalog.Products(), catalog.Synonyms())
	if err != nil {
		e.logger.Debug("unresolved product reference", "session_id", session.ID, "text", text)
		metrics.Resolutions.WithLabelValues("storefront", string(domain.OutcomeUnresolved)).Inc()
		return domain.Outcome{
			Kind: domain.OutcomeUnresolved,
			Text: ensurePrompt(unknownProductText(text)),
		}
	}

	if size != "" && !product.HasSize(size) {
		metrics.Resolutions.WithLabelValues("storefront", string(domain.OutcomeUnresolved)).Inc()
		return domain.Outcome{
			Kind: domain.OutcomeUnresolved,
			Text: ensurePrompt(sizeUnavailableText(product, size)),
		}
	}

	item := domain.LineItem{ProductID: product.ID, Quantity: quantity}
	if size != "" {
		item.Attrs = map[string]string{"size": strings.ToUpper(size)}
	}
	session.AddToCart(item)
	session.Record("cart", fmt.Sprintf("add %s x%d", product.ID, quantity), "cart")

	e.logger.Info("added to cart",
		"session_id", session.ID,
		"product_id", product.ID,
		"quantity", quantity,
	)
	metrics.Resolutions.WithLabelValues("storefront", string(domain.OutcomeAdvanced)).Inc()

	return domain.Outcome{
		Kind: domain.OutcomeAdvanced,
		Text: ensurePrompt(addedText(product, quantity, size) + "\n\n" + e.cartSummary(session)),
	}
}

// CartText renders the current cart without mutating the session.
func (e *Engine) CartText(session *domain.Session) string {
	return ensurePrompt(e.cartSummary(session))
}

// ClearCart empties the cart.
func (e *Engine) ClearCart(session *domain.Session) string {
	session.ClearCart()
	session.Record("cart", "clear", "cart")
	return ensurePrompt("Your cart is empty now.")
}

// PlaceOrder turns the cart into a durable order. An empty cart or an
// unknown product ID aborts the whole order: nothing partial is ever
// persisted and the session is left otherwise untouched.
func (e *Engine) PlaceOrder(ctx context.Context, session *domain.Session) domain.Outcome {
	if len(session.Cart) == 0 {
		return domain.Outcome{
			Kind: domain.OutcomeUnresolved,
			Text: ensurePrompt("Your cart is empty. Find something you like first, then ask me to place the order."),
		}
	}

	order, err := e.buildOrder(session.Cart)
	if err != nil {
		e.logger.Warn("order construction failed", "session_id", session.ID, "err", err)
		return domain.Outcome{
			Kind: domain.OutcomeUnresolved,
			Text: ensurePrompt("One of the items in your cart is no longer in the catalog, so I couldn't place the order. Nothing was charged."),
		}
	}

	if err := e.ledger.Append(ctx, order); err != nil {
		e.logger.Error("ledger append failed", "session_id", session.ID, "order_id", order.ID, "err", err)
		return domain.Outcome{
			Kind: domain.OutcomeUnresolved,
			Text: ensurePrompt("I couldn't save your order just now. Your cart is untouched, please try again."),
		}
	}

	session.Orders = append(session.Orders, order.ID)
	session.Record("cart", "place_order "+order.ID, "order")
	session.ClearCart()

	e.logger.Info("order placed",
		"session_id", session.ID,
		"order_id", order.ID,
		"total", order.Total,
		"items", len(order.Items),
	)
	metrics.Resolutions.WithLabelValues("storefront", string(domain.OutcomeAdvanced)).Inc()
	metrics.OrdersPlaced.Inc()
	metrics.OrderValue.Observe(float64(order.Total))

	return domain.Outcome{
		Kind: domain.OutcomeAdvanced,
		Text: ensurePrompt(orderText("Order placed!", order)),
	}
}

// LastOrderText renders the most recently placed order across all
// sessions. A missing or unreadable ledger reads as empty.
func (e *Engine) LastOrderText(ctx context.Context) string {
	order, ok, err := e.ledger.MostRecent(ctx)
	if err != nil || !ok {
		return ensurePrompt("There are no orders on record yet.")
	}
	return ensurePrompt(orderText("Your last order:", order))
}

// RecordText renders the session's accumulated record: identity, placed
// orders and recent cart activity.
func (e *Engine) RecordText(session *domain.Session) string {
	return ensurePrompt(recordText(session))
}

// buildOrder prices the cart against the catalog.
// Returns domain.ErrUnknownProduct (wrapped) when any line references a
// product the catalog does not know; no partial order is built.
func (e *Engine) buildOrder(cart []domain.LineItem) (domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(cart))
	var total int64
	for _, line := range cart {
		product, err := e.catalog.Product(line.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("cart line %q: %w", line.ProductID, err)
		}
		lineTotal := product.Price * int64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			Attrs:     line.Attrs,
		})
		total += lineTotal
	}

	return domain.Order{
		ID:        "ord-" + uuid.NewString()[:8],
		Items:     items,
		Total:     total,
		Currency:  e.catalog.Currency(),
		CreatedAt: time.Now().UTC(),
	}, nil
}
