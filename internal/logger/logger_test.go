package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer for testing.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()

	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}

	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("WARN")
	Debug("should not appear")
	Info("should not appear")
	Warn("should appear")
	Error("should appear too")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "should appear too")
}

func TestJSONFormat(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	Info("raw fallback", KeyAttrType, uint32(26), KeyRawFallback, true)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "raw fallback", decoded["msg"])
	assert.Equal(t, true, decoded["raw_fallback"])
}

func TestContextFieldsInjected(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	lc := NewLogContext("pkt-123").WithAttr(26, 9)
	ctx := WithContext(context.Background(), lc)

	DebugCtx(ctx, "decoding vendor attribute")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "pkt-123", decoded[KeyPacketID])
	assert.EqualValues(t, 26, decoded[KeyAttrType])
	assert.EqualValues(t, 9, decoded[KeyVendorPEN])
}

func TestFromContextNilSafe(t *testing.T) {
	assert.Nil(t, FromContext(nil))
	assert.Nil(t, FromContext(context.Background()))
}

func TestLogContextClone(t *testing.T) {
	lc := NewLogContext("pkt-1").WithAttr(1, 0).WithNAS("10.0.0.1")
	clone := lc.Clone()
	clone.PacketID = "pkt-2"
	assert.Equal(t, "pkt-1", lc.PacketID)
	assert.Equal(t, "pkt-2", clone.PacketID)
	assert.Equal(t, "10.0.0.1", clone.NASAddr)
}

func TestDurationHelpers(t *testing.T) {
	lc := NewLogContext("pkt-1")
	assert.GreaterOrEqual(t, lc.DurationMs(), 0.0)

	var nilLC *LogContext
	assert.Equal(t, 0.0, nilLC.DurationMs())
}
