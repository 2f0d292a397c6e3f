package audit_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/internal/audit"
)

func TestOpen_MemoryFallback(t *testing.T) {
	store, err := audit.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, audit.Entry{
		PacketID: "pkt-1",
		NASAddr:  "10.0.0.1",
		AttrType: 1,
		AttrName: "User-Name",
	}))

	entries, err := store.ForPacket(ctx, "pkt-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "User-Name", entries[0].AttrName)
}

func TestOpen_FileRunsMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	store, err := audit.Open(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, audit.Entry{
		PacketID:    "pkt-2",
		NASAddr:     "10.0.0.2",
		AttrType:    69,
		AttrName:    "Tunnel-Password",
		RawFallback: true,
		Fragments:   2,
	}))

	entries, err := store.ForPacket(ctx, "pkt-2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].RawFallback)
	assert.Equal(t, 2, entries[0].Fragments)
}

func TestRawFallbackRate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	store, err := audit.Open(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	since := time.Now().Add(-time.Minute)
	require.NoError(t, store.Record(ctx, audit.Entry{PacketID: "a", AttrName: "User-Name", RawFallback: false}))
	require.NoError(t, store.Record(ctx, audit.Entry{PacketID: "b", AttrName: "Unknown", RawFallback: true}))

	rate, err := store.RawFallbackRate(ctx, since)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 0.001)
}

func TestPrune(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	store, err := audit.Open(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, audit.Entry{
		PacketID:  "old",
		AttrName:  "User-Name",
		DecodedAt: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, store.Record(ctx, audit.Entry{PacketID: "new", AttrName: "User-Name"}))

	n, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	remaining, err := store.ForPacket(ctx, "new")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
