package prometheus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/metrics"
	_ "github.com/openradius/raddecode/pkg/metrics/prometheus"
)

func TestNewDecodeMetrics_DisabledReturnsNil(t *testing.T) {
	assert.Nil(t, metrics.NewDecodeMetrics())
}

func TestDecodeMetrics_RecordsAttribute(t *testing.T) {
	metrics.InitRegistry()
	dm := metrics.NewDecodeMetrics()
	require.NotNil(t, dm)

	dm.RecordAttribute("User-Name", 10*time.Microsecond, false)
	dm.RecordAttribute("Cisco-AVPair", 20*time.Microsecond, true)
	dm.RecordFragments("wimax", 2)
	dm.RecordDepth(3)
	dm.RecordObfuscationFailure("user_password")

	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["raddecode_attributes_decoded_total"])
	assert.True(t, names["raddecode_fragments_reassembled_total"])
	assert.True(t, names["raddecode_nesting_depth"])
	assert.True(t, names["raddecode_obfuscation_failures_total"])
}

func TestDecodeMetrics_NilReceiverIsNoOp(t *testing.T) {
	var dm metrics.DecodeMetrics
	assert.NotPanics(t, func() {
		if dm != nil {
			dm.RecordAttribute("x", 0, false)
		}
	})
}
