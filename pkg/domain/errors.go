package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoMatch is returned by the resolvers when no candidate matched the
// input text. Recoverable: callers re-present the legal actions.
var ErrNoMatch = errors.New("no match")

// ErrNoActions is returned when the legal action set is empty (a dead-end
// scene). Distinct from ErrNoMatch: it triggers a soft reset, not a retry.
var ErrNoActions = errors.New("no actions available")

// ErrSceneNotFound is returned when a scene ID does not exist in the world.
var ErrSceneNotFound = errors.New("scene not found")

// ErrUnknownProduct is returned when an order references a product ID that
// is not in the catalog. The order is not created.
var ErrUnknownProduct = errors.New("unknown product")

// ErrEmptyCart is returned when an order is placed over an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrSizeUnavailable is returned when a requested size is not offered by
// the product.
var ErrSizeUnavailable = errors.New("size not available")
