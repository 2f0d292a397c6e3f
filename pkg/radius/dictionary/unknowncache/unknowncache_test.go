package unknowncache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/dictionary/unknowncache"
)

func openTestCache(t *testing.T) *unknowncache.Cache {
	t.Helper()
	c, err := unknowncache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAttributeRoundTrip(t *testing.T) {
	c := openTestCache(t)

	rec := unknowncache.AttributeRecord{
		ParentPath: "Root",
		PEN:        9,
		Number:     250,
		Name:       "Vendor-9-Attr-250",
	}
	require.NoError(t, c.PutAttribute(rec))

	got, ok, err := c.GetAttribute("Root", 9, 250)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestAttributeMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.GetAttribute("Root", 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVendorRoundTrip(t *testing.T) {
	c := openTestCache(t)

	rec := unknowncache.VendorRecord{
		PEN:         31337,
		Name:        "Vendor-31337",
		TypeWidth:   1,
		LengthWidth: 1,
	}
	require.NoError(t, c.PutVendor(rec))

	got, ok, err := c.GetVendor(31337)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestVendorMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.GetVendor(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunGC_NoRewriteIsNotAnError(t *testing.T) {
	c := openTestCache(t)
	err := c.RunGC(0.5)
	assert.NoError(t, err)
}
