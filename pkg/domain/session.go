package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransitionRecord is one accepted state transition. History grows
// monotonically within a session and is never pruned.
type TransitionRecord struct {
	From   string    `json:"from"`
	Action string    `json:"action"`
	To     string    `json:"to"`
	Time   time.Time `json:"time"`
}

// LineItem is one cart entry. Quantity is always >= 1; Attrs carries
// optional selections such as size.
type LineItem struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Session is the mutable per-conversation record. It is owned by exactly
// one conversation: one utterance is fully resolved, applied and rendered
// before the next is accepted, so the struct itself needs no locking.
// Cross-session safety is the session.Manager's job.
type Session struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name,omitempty"`

	// CurrentScene is the game-master position. It must always reference a
	// valid scene ID; engines fall back to the start scene when it does not.
	CurrentScene string `json:"current_scene,omitempty"`

	// Cart is the storefront position.
	Cart []LineItem `json:"cart,omitempty"`

	History   []TransitionRecord `json:"history"`
	Journal   []string           `json:"journal"`
	Inventory []string           `json:"inventory"`

	// NamedNPCs remembers characters the player has met, keyed by name.
	NamedNPCs   map[string]string `json:"named_npcs,omitempty"`
	ChoicesMade []string          `json:"choices_made,omitempty"`

	// Orders references placed orders by ID; the orders themselves live in
	// the durable ledger and outlive the session.
	Orders []string `json:"orders,omitempty"`

	StartedAt time.Time `json:"started_at"`
}

// NewSession creates a fresh session positioned at startScene with empty
// collections. The ID is short on purpose: it is display/logging currency,
// not a uniqueness guarantee across processes.
func NewSession(startScene string) *Session {
	return &Session{
		ID:           uuid.NewString()[:8],
		CurrentScene: startScene,
		History:      []TransitionRecord{},
		Journal:      []string{},
		Inventory:    []string{},
		NamedNPCs:    map[string]string{},
		StartedAt:    time.Now().UTC(),
	}
}

// Reset returns the session to its initial lifecycle: empty collections
// and the position back at startScene. The ID survives a reset; it is the
// storage key clients hold, so only NewSession ever mints one.
func (s *Session) Reset(startScene string) {
	id := s.ID
	*s = *NewSession(startScene)
	s.ID = id
}

// Record appends a transition to history and the action to the running
// choice list.
func (s *Session) Record(from, action, to string) {
	s.History = append(s.History, TransitionRecord{
		From:   from,
		Action: action,
		To:     to,
		Time:   time.Now().UTC(),
	})
	s.ChoicesMade = append(s.ChoicesMade, action)
}

// AddToCart merges the item with an existing line item when product and
// attrs are identical, otherwise appends a new line.
func (s *Session) AddToCart(item LineItem) {
	for i, existing := range s.Cart {
		if existing.ProductID == item.ProductID && attrsEqual(existing.Attrs, item.Attrs) {
			s.Cart[i].Quantity += item.Quantity
			return
		}
	}
	s.Cart = append(s.Cart, item)
}

// ClearCart empties the cart without touching history or orders.
func (s *Session) ClearCart() {
	s.Cart = nil
}

func attrsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
