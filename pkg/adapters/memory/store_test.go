package memory_test

import (
	"testing"

	"parley/pkg/adapters/memory"
	"parley/pkg/ports"
)

// Ensure Store implements SessionStore.
var _ ports.SessionStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}
