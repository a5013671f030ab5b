package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/adapters/memory"
	"github.com/planora/planora/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunTripServiceContract(t, store)
}

func TestMemoryStore_TokensAreIsolated(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", ports.TripRecord{Name: "Alice Trip"})
	require.NoError(t, err)

	_, err = store.Get(ctx, "bob", created.ID)
	assert.Error(t, err)

	trips, err := store.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, trips)
}
