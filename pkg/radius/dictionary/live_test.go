package dictionary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/dictionary"
)

func TestLive_StoreSwapsCurrentDictionary(t *testing.T) {
	d1 := dictionary.New()
	d1.Root().AddChild(dictionary.NewDescriptor(1, "One", dictionary.TypeString, d1.Root(), dictionary.Flags{}))

	live := dictionary.NewLive(d1)
	require.NotNil(t, live.ChildByNum(live.Root(), 1))
	assert.Equal(t, "One", live.ChildByNum(live.Root(), 1).Name)

	d2 := dictionary.New()
	d2.Root().AddChild(dictionary.NewDescriptor(2, "Two", dictionary.TypeString, d2.Root(), dictionary.Flags{}))
	live.Store(d2)

	assert.Nil(t, live.ChildByNum(live.Root(), 1))
	require.NotNil(t, live.ChildByNum(live.Root(), 2))
	assert.Equal(t, "Two", live.ChildByNum(live.Root(), 2).Name)
}
