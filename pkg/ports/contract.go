package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract. Adapter test packages call it with a
// ready-to-use store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession("intro")
		session.PlayerName = "Asha"
		session.Journal = append(session.Journal, "Found map fragment.")
		session.Record("intro", "inspect_box", "box")

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.CurrentScene, loaded.CurrentScene)
		assert.Equal(t, "Asha", loaded.PlayerName)
		require.Len(t, loaded.History, 1)
		assert.Equal(t, "inspect_box", loaded.History[0].Action)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		session := domain.NewSession("intro")
		require.NoError(t, store.Save(ctx, sessionID, session))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Journal = append(first.Journal, "mutated by caller")

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, second.Journal, "caller mutation must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession("intro")))

		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession("intro"))
		_ = store.Save(ctx, id2, domain.NewSession("intro"))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
