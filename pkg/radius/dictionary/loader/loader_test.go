package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/dictionary/loader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_BaseAttributes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dictionary", `
# base attributes
ATTRIBUTE User-Name 1 string
ATTRIBUTE NAS-IP-Address 4 ipaddr
ATTRIBUTE Tunnel-Password 69 string has_tag,encrypt=2
`)

	dict, err := loader.Load(path)
	require.NoError(t, err)

	userName := dict.ChildByNum(dict.Root(), 1)
	require.NotNil(t, userName)
	assert.Equal(t, "User-Name", userName.Name)
	assert.Equal(t, dictionary.TypeString, userName.Type)

	tunnelPw := dict.ChildByNum(dict.Root(), 69)
	require.NotNil(t, tunnelPw)
	assert.True(t, tunnelPw.Flags.HasTag)
	assert.Equal(t, dictionary.SubtypeTunnelPassword, tunnelPw.Flags.Subtype)
}

func TestLoad_VendorBlock(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dictionary", `
VENDOR Cisco 9
BEGIN-VENDOR Cisco
ATTRIBUTE Cisco-AVPair 1 string
END-VENDOR Cisco
`)

	dict, err := loader.Load(path)
	require.NoError(t, err)

	vendor := dict.VendorByNum(9)
	require.NotNil(t, vendor)
	assert.Equal(t, "Cisco", vendor.Name)

	avpair := dict.ChildByNum(vendor.Root, 1)
	require.NotNil(t, avpair)
	assert.Equal(t, "Cisco-AVPair", avpair.Name)
}

func TestLoad_Include(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dictionary.rfc2865", "ATTRIBUTE User-Name 1 string\n")
	main := writeFile(t, dir, "dictionary", "$INCLUDE dictionary.rfc2865\nATTRIBUTE NAS-Port 5 integer\n")

	dict, err := loader.Load(main)
	require.NoError(t, err)

	assert.NotNil(t, dict.ChildByNum(dict.Root(), 1))
	assert.NotNil(t, dict.ChildByNum(dict.Root(), 5))
}

func TestLoad_UnknownType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dictionary", "ATTRIBUTE Bogus 200 nonsense\n")

	_, err := loader.Load(path)
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dictionary", "ATTRIBUTE User-Name 1 string\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *dictionary.Memory, 1)
	go func() {
		_ = loader.Watch(ctx, path, func(d *dictionary.Memory) {
			select {
			case reloaded <- d:
			default:
			}
		})
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("ATTRIBUTE User-Name 1 string\nATTRIBUTE NAS-Port 5 integer\n"), 0o644))

	select {
	case d := <-reloaded:
		assert.NotNil(t, d.ChildByNum(d.Root(), 5))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dictionary reload")
	}
}
